package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gabrielfurtado/pedido-consolidador/constants"
	"github.com/gabrielfurtado/pedido-consolidador/internal/config"
	"github.com/gabrielfurtado/pedido-consolidador/internal/export"
	"github.com/gabrielfurtado/pedido-consolidador/internal/extract"
	"github.com/gabrielfurtado/pedido-consolidador/internal/pipeline"
	"github.com/gabrielfurtado/pedido-consolidador/internal/providers"
	"github.com/gabrielfurtado/pedido-consolidador/internal/settings"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory with sales-order documents (pdf/png/jpg)")
		files    = flag.String("files", "", "comma-separated list of files (alternative to --dir)")
		provider = flag.String("provider", "", "model provider id (overrides stored/env setting)")
		model    = flag.String("model", "", "model name (overrides stored/env setting)")
		out      = flag.String("out", "", "output file path (default: pedido_compra.xlsx next to input)")
		format   = flag.String("format", "xlsx", "output format: xlsx | csv")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		// .env is optional; OS environment still applies
		slog.Debug("no .env file loaded", "error", err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.FromEnv()

	paths, err := collectInputs(*dir, *files)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		printError("Error: no processable files found (need --dir or --files with pdf/png/jpg)\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := settings.Open(cfg.Settings.DatabasePath, logger)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("settings.close_error", "error", cerr)
		}
	}()

	prompts, err := store.Prompts(ctx)
	if err != nil {
		printError("Error: load prompts: %v\n", err)
		os.Exit(1)
	}

	// precedence: flags > environment > stored settings
	storedProvider, storedModel, storedKey, err := store.ProviderSettings(ctx)
	if err != nil {
		printError("Error: load provider settings: %v\n", err)
		os.Exit(1)
	}
	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = storedKey
	}
	if cfg.Provider.Model == "" {
		cfg.Provider.Model = storedModel
	}
	if storedProvider != "" && os.Getenv("AI_PROVIDER") == "" {
		cfg.Provider.ID = storedProvider
	}
	if *provider != "" {
		cfg.Provider.ID = *provider
	}
	if *model != "" {
		cfg.Provider.Model = *model
	}

	if !config.ValidAPIKeyShape(cfg.Provider.ID, cfg.Provider.APIKey) {
		printError("Error: missing or malformed API key for provider %q\n", cfg.Provider.ID)
		os.Exit(1)
	}

	extractor, closeModel, err := providers.New(ctx, cfg.Provider, logger)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if closeModel != nil {
		defer func() {
			if cerr := closeModel(); cerr != nil {
				logger.Warn("provider.close_error", "error", cerr)
			}
		}()
	}

	text := extract.NewExtractor(extract.Config{
		Pdftotext:   cfg.Extract.Pdftotext,
		Pdftoppm:    cfg.Extract.Pdftoppm,
		Tesseract:   cfg.Extract.Tesseract,
		Lang:        cfg.Extract.TesseractLang,
		DPI:         cfg.Extract.DPI,
		MaxPages:    cfg.Extract.MaxPages,
		MinImageDim: cfg.Extract.MinImageDim,
		WorkDir:     cfg.Extract.WorkDir,
	}, logger)

	orch := pipeline.NewOrchestrator(text, extractor, logger)
	orch.Concurrency = cfg.Pipeline.Concurrency
	orch.FileTimeout = cfg.Pipeline.FileTimeout

	report, err := orch.Run(ctx, paths, prompts)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoProducts) {
			printError("A IA não conseguiu extrair dados válidos dos documentos.\n")
			for _, f := range report.ProcessingInfo.Failures {
				printError("  %s: %s\n", f.File, f.Reason)
			}
			os.Exit(2)
		}
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		base := *dir
		if base == "" {
			base = filepath.Dir(paths[0])
		}
		outPath = filepath.Join(base, "pedido_compra."+*format)
	}

	if err := writeReport(report, outPath, *format, logger); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consolidated %d products (%d extracted from %d/%d files) into %s\n",
		report.TotalProducts,
		report.ProcessingInfo.ExtractedProducts,
		report.ProcessingInfo.FilesSucceeded,
		report.ProcessingInfo.FilesAttempted,
		outPath,
	)
	for _, f := range report.ProcessingInfo.Failures {
		fmt.Printf("  skipped %s: %s\n", f.File, f.Reason)
	}
}

// collectInputs expands --dir (non-recursive, allowed extensions only) or
// splits --files, keeping a stable order.
func collectInputs(dir, files string) ([]string, error) {
	var paths []string
	switch {
	case dir != "" && files != "":
		return nil, fmt.Errorf("use either --dir or --files, not both")
	case dir != "":
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if constants.IsAllowedExt(filepath.Ext(e.Name())) {
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
	case files != "":
		for _, p := range strings.Split(files, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func writeReport(report *pipeline.Report, outPath, format string, logger *slog.Logger) error {
	switch format {
	case "xlsx":
		data, err := export.WriteXLSX(report, logger)
		if err != nil {
			return err
		}
		return os.WriteFile(outPath, data, 0o644)
	case "csv":
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.Warn("export.csv.close_error", "error", cerr)
			}
		}()
		return export.WriteCSV(f, report)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}
