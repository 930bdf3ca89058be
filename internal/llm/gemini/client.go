package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/gabrielfurtado/pedido-consolidador/internal/llm"
)

// Config for the Gemini client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	logger *slog.Logger
}

// NewClient builds a Gemini-backed extractor on the official SDK.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-pro"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SetMaxOutputTokens(cfg.MaxTokens)
	model.ResponseMIMEType = "application/json"

	return &Client{client: client, model: model, name: cfg.Model, logger: logger}, nil
}

// Close releases the underlying SDK connection.
func (c *Client) Close() error { return c.client.Close() }

// ExtractProducts implements llm.ProductExtractor. Gemini takes the system
// instruction on the model, so each call works on its own shallow copy; the
// shared model is never written after construction, keeping concurrent calls
// from the pipeline workers safe.
func (c *Client) ExtractProducts(ctx context.Context, text string, prompts llm.PromptConfig) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"provider", "google",
		"model", c.name,
		"text_len", len(text),
	)

	m := *c.model
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.BuildSystemPrompt(prompts))},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(llm.BuildUserPrompt(text)))
	if err != nil {
		pe := classify(err)
		c.logger.Error("llm.extract.api_error",
			"req_id", rid, "kind", pe.Kind,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", pe
	}

	content := collectText(resp)
	if content == "" {
		return "", &llm.ProviderError{Provider: "google", Kind: llm.KindBadResponse, Message: "no text parts in response"}
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// classify maps SDK errors to the shared provider-error taxonomy using the
// transported googleapi status when present.
func classify(err error) *llm.ProviderError {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return llm.Classify("google", gerr.Code, []byte(gerr.Message), err)
	}
	return &llm.ProviderError{Provider: "google", Kind: llm.KindTransport, Message: err.Error(), Err: err}
}
