// Package pipeline drives the batch: text extraction, model call, parse,
// normalize, then a single consolidation pass. Per-file failures never abort
// the batch; files run concurrently in a bounded worker pool and meet again
// only at the final reduction.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielfurtado/pedido-consolidador/constants"
	"github.com/gabrielfurtado/pedido-consolidador/internal/extract"
	"github.com/gabrielfurtado/pedido-consolidador/internal/llm"
	"github.com/gabrielfurtado/pedido-consolidador/internal/product"
)

// ErrNoProducts signals that the entire batch yielded zero raw products. The
// Report returned alongside still carries per-file failure reasons, so
// callers can show "no valid data extracted" with diagnostics instead of an
// empty success.
var ErrNoProducts = errors.New("no valid product data extracted from any document")

// TextExtractor is the narrow view of the extraction layer the orchestrator
// depends on.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (extract.Result, error)
}

type Orchestrator struct {
	Text        TextExtractor
	Model       llm.ProductExtractor
	Concurrency int           // worker pool size, default 4
	FileTimeout time.Duration // per-file budget, 0 = none
	Logger      *slog.Logger
}

func NewOrchestrator(text TextExtractor, model llm.ProductExtractor, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		Text:        text,
		Model:       model,
		Concurrency: 4,
		Logger:      logger,
	}
}

// fileResult is what one worker hands back to the reduction step.
type fileResult struct {
	file    string
	records []product.Record
	raw     int
	failure *FileFailure
}

// Run processes every file, consolidates the survivors and assembles the
// report. Cancellation of ctx propagates into in-flight extraction and model
// calls.
func (o *Orchestrator) Run(ctx context.Context, paths []string, prompts llm.PromptConfig) (*Report, error) {
	batchID := uuid.New().String()
	start := time.Now()
	o.Logger.Info("pipeline.batch.start", "batch_id", batchID, "files", len(paths))

	workers := o.Concurrency
	if workers <= 0 {
		workers = 4
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string)
	results := make(chan fileResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- o.processFile(ctx, batchID, path, prompts)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// single reduction pass: the accumulating slices are owned here only
	var all []product.Record
	info := ProcessingInfo{FilesAttempted: len(paths)}
	for res := range results {
		if res.failure != nil {
			info.Failures = append(info.Failures, *res.failure)
			continue
		}
		info.FilesSucceeded++
		info.ExtractedProducts += res.raw
		all = append(all, res.records...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	consolidated := product.Consolidate(all)

	var totalValue float64
	for _, r := range consolidated {
		totalValue += r.TotalPrice
	}

	report := &Report{
		Products:       consolidated,
		TotalProducts:  len(consolidated),
		TotalValue:     totalValue,
		ProcessingInfo: info,
	}

	o.Logger.Info("pipeline.batch.done",
		"batch_id", batchID,
		"files_succeeded", info.FilesSucceeded,
		"extracted_products", info.ExtractedProducts,
		"consolidated_products", report.TotalProducts,
		"total_value", report.TotalValue,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if info.ExtractedProducts == 0 {
		return report, ErrNoProducts
	}
	return report, nil
}

// processFile walks one document through the per-file state machine. Any
// failure is captured with its stage and reason; only malformed model output
// is downgraded to zero products instead of failing the file.
func (o *Orchestrator) processFile(ctx context.Context, batchID, path string, prompts llm.PromptConfig) fileResult {
	name := filepath.Base(path)
	log := o.Logger.With("batch_id", batchID, "file", name)

	if o.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.FileTimeout)
		defer cancel()
	}

	fail := func(stage constants.FileStage, reason string) fileResult {
		log.Warn("pipeline.file.failed", "stage", stage, "reason", reason)
		return fileResult{file: name, failure: &FileFailure{File: name, Reason: reason}}
	}

	if !constants.IsAllowedExt(filepath.Ext(path)) {
		return fail(constants.StagePending, "unsupported file format")
	}

	res, err := o.Text.Extract(ctx, path)
	if err != nil {
		return fail(constants.StageTextExtracted, err.Error())
	}
	if res.Text == "" {
		return fail(constants.StageTextExtracted, "no text found")
	}
	log.Debug("pipeline.file.text_extracted", "method", res.Method, "pages", res.Pages, "text_len", len(res.Text))

	raw, err := o.Model.ExtractProducts(ctx, res.Text, prompts)
	if err != nil {
		return fail(constants.StageAICalled, llm.OperatorMessage(err))
	}

	objects, err := llm.ParseProducts(raw, log)
	if err != nil {
		// malformed response: zero products for this file, not a failure
		log.Warn("pipeline.file.malformed_response", "stage", constants.StageParsed, "error", err)
		return fileResult{file: name}
	}

	records := make([]product.Record, 0, len(objects))
	for _, obj := range objects {
		if rec := product.Normalize(obj, path); rec != nil {
			records = append(records, *rec)
		}
	}

	log.Info("pipeline.file.done", "stage", constants.StageNormalized, "raw_products", len(records))
	return fileResult{file: name, records: records, raw: len(records)}
}
