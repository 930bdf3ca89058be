// Package providers selects a model backend at construction time. The
// pipeline only ever sees llm.ProductExtractor; no runtime type inspection
// happens past this point.
package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gabrielfurtado/pedido-consolidador/internal/config"
	"github.com/gabrielfurtado/pedido-consolidador/internal/llm"
	"github.com/gabrielfurtado/pedido-consolidador/internal/llm/anthropic"
	"github.com/gabrielfurtado/pedido-consolidador/internal/llm/gemini"
	"github.com/gabrielfurtado/pedido-consolidador/internal/llm/openai"
	"github.com/gabrielfurtado/pedido-consolidador/internal/llm/rest"
)

// New builds the extractor for the configured provider. The returned closer
// is non-nil only for backends holding a connection (Gemini SDK).
func New(ctx context.Context, p config.Provider, logger *slog.Logger) (llm.ProductExtractor, func() error, error) {
	if p.Model == "" {
		if info, ok := config.LookupProvider(p.ID); ok {
			p.Model = info.DefaultModel
		}
	}

	switch p.ID {
	case "openai":
		c := openai.NewClient(openai.Config{
			APIKey:      p.APIKey,
			Model:       p.Model,
			Temperature: p.Temperature,
			Timeout:     p.Timeout,
		}, logger)
		return c, nil, nil
	case "anthropic":
		c := anthropic.NewClient(anthropic.Config{
			APIKey:      p.APIKey,
			Model:       p.Model,
			Temperature: p.Temperature,
			Timeout:     p.Timeout,
		}, logger)
		return c, nil, nil
	case "google":
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      p.APIKey,
			Model:       p.Model,
			Temperature: p.Temperature,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		c, err := rest.NewClient(rest.Config{
			Provider:    p.ID,
			APIKey:      p.APIKey,
			Model:       p.Model,
			Temperature: p.Temperature,
			Timeout:     p.Timeout,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("provider %q not supported: %w", p.ID, err)
		}
		return c, nil, nil
	}
}
