package extract

import (
	"context"
	"fmt"

	"github.com/gabrielfurtado/pedido-consolidador/constants"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (Result, error) {
	var warns []string

	ocrPath, cleanup, upscaled, err := upscaleIfSmall(path, e.cfg.MinImageDim, e.cfg.WorkDir)
	if err != nil {
		// OCR on the original still has a chance; record and carry on.
		warns = append(warns, fmt.Sprintf("preprocess: %v", err))
		ocrPath = path
	}
	if cleanup != nil {
		defer cleanup()
	}
	if upscaled {
		e.logger.Debug("extract.image_upscaled", "path", path, "min_dim", e.cfg.MinImageDim)
	}

	txt, w, err := e.tesseractOCR(ctx, ocrPath)
	warns = append(warns, w...)
	if err != nil {
		return Result{SourceType: constants.IMAGE, Warnings: warns}, err
	}

	return Result{
		Text:       Normalize(txt),
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Language:   e.cfg.Lang,
		Warnings:   warns,
	}, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.Lang)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}
