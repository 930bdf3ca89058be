package extract

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// upscaleIfSmall renders a proportionally enlarged PNG copy of an image whose
// shorter dimension is below minDim. Tesseract accuracy drops sharply on
// low-resolution photos of printed orders, and upscaling before OCR recovers
// most of it. Returns the path to feed OCR, an optional cleanup func, and
// whether upscaling happened.
func upscaleIfSmall(path string, minDim int, workDir string) (string, func(), bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return path, nil, false, err
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		_ = f.Close()
		return path, nil, false, fmt.Errorf("decode image config: %w", err)
	}

	shorter := cfg.Width
	if cfg.Height < shorter {
		shorter = cfg.Height
	}
	if shorter >= minDim {
		_ = f.Close()
		return path, nil, false, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		_ = f.Close()
		return path, nil, false, err
	}
	src, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return path, nil, false, fmt.Errorf("decode image: %w", err)
	}

	scale := float64(minDim) / float64(shorter)
	dstW := int(float64(cfg.Width)*scale + 0.5)
	dstH := int(float64(cfg.Height)*scale + 0.5)
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	tmp, err := os.CreateTemp(workDir, "pc-up-*.png")
	if err != nil {
		return path, nil, false, err
	}
	if err := png.Encode(tmp, dst); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return path, nil, false, fmt.Errorf("encode upscaled png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return path, nil, false, err
	}

	name := tmp.Name()
	cleanup := func() { _ = os.Remove(name) }
	return name, cleanup, true, nil
}
