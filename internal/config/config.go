package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. It is built once at startup and
// passed into constructors; nothing in the pipeline mutates it.
type Config struct {
	Provider Provider
	Extract  ExtractConfig
	Pipeline PipelineConfig
	Settings SettingsConfig
}

// Provider selects the model backend and its credentials for a run.
type Provider struct {
	ID          string // e.g. "openai", "anthropic", "google", "deepseek"
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// ExtractConfig holds text-extraction related configuration.
type ExtractConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	DPI           int
	MaxPages      int
	MinImageDim   int
	WorkDir       string
}

// PipelineConfig holds batch-processing configuration.
type PipelineConfig struct {
	Concurrency int
	FileTimeout time.Duration
}

// SettingsConfig points at the sqlite store holding prompts and provider
// defaults set by the administrator.
type SettingsConfig struct {
	DatabasePath string
}

// FromEnv builds a Config from environment variables with sensible defaults.
// Call godotenv.Load beforehand if a .env file should participate.
func FromEnv() Config {
	return Config{
		Provider: Provider{
			ID:          getEnv("AI_PROVIDER", "openai"),
			Model:       getEnv("AI_MODEL", ""),
			APIKey:      getEnv("AI_API_KEY", ""),
			Temperature: 0.1,
			Timeout:     getEnvDuration("AI_TIMEOUT", 60*time.Second),
		},
		Extract: ExtractConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "por"),
			DPI:           getEnvInt("OCR_DPI", 300),
			MaxPages:      getEnvInt("OCR_MAX_PAGES", 0),
			MinImageDim:   getEnvInt("OCR_MIN_IMAGE_DIM", 1000),
			WorkDir:       getEnv("WORK_DIR", os.TempDir()),
		},
		Pipeline: PipelineConfig{
			Concurrency: getEnvInt("PIPELINE_CONCURRENCY", 4),
			FileTimeout: getEnvDuration("PIPELINE_FILE_TIMEOUT", 2*time.Minute),
		},
		Settings: SettingsConfig{
			DatabasePath: getEnv("SETTINGS_DB_PATH", "consolidador.db"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
