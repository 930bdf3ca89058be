// Package rest is the generic adapter for OpenAI-compatible chat APIs. It
// covers the backends that only differ in endpoint URL: DeepSeek, Groq,
// Mistral, Together, Fireworks and NVIDIA.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielfurtado/pedido-consolidador/internal/llm"
)

// Endpoints maps provider ids to their chat-completions URL.
var Endpoints = map[string]string{
	"deepseek":  "https://api.deepseek.com/v1/chat/completions",
	"meta":      "https://api.llama-api.com/chat/completions",
	"mistral":   "https://api.mistral.ai/v1/chat/completions",
	"groq":      "https://api.groq.com/openai/v1/chat/completions",
	"together":  "https://api.together.xyz/v1/chat/completions",
	"fireworks": "https://api.fireworks.ai/inference/v1/chat/completions",
	"nvidia":    "https://api.nvcf.nvidia.com/v2/nvcf/pexec/functions",
}

// Config for a generic REST client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type Client struct {
	cfg      Config
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	endpoint, ok := Endpoints[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("no endpoint configured for provider %q", cfg.Provider)
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:      cfg,
		endpoint: endpoint,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}, nil
}

// ExtractProducts implements llm.ProductExtractor over the OpenAI-compatible
// wire shape shared by these providers.
func (c *Client) ExtractProducts(ctx context.Context, text string, prompts llm.PromptConfig) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"provider", c.cfg.Provider,
		"model", c.cfg.Model,
		"text_len", len(text),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt(prompts)},
			{"role": "user", "content": llm.BuildUserPrompt(text)},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, err := llm.SendJSON(ctx, c.http, c.cfg.Provider, c.endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.extract.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", &llm.ProviderError{Provider: c.cfg.Provider, Kind: llm.KindBadResponse, Message: "undecodable completion payload", Err: err}
	}
	if len(cc.Choices) == 0 {
		return "", &llm.ProviderError{Provider: c.cfg.Provider, Kind: llm.KindBadResponse, Message: "no choices in completion"}
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}
