package gemini

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/gabrielfurtado/pedido-consolidador/internal/llm"
)

func newOfflineClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewClient(context.Background(), Config{APIKey: "AIzaSyTestKeyOnly"}, logger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// One client is shared by all pipeline workers, so concurrent calls must not
// touch shared model state. Run with -race to catch regressions.
func TestExtractProducts_ConcurrentCallsShareOneClient(t *testing.T) {
	t.Parallel()

	c := newOfflineClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // calls fail fast without the network; the prompt setup still runs

	prompts := llm.PromptConfig{Task: "Extrair produtos."}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.ExtractProducts(ctx, "PEDIDO DE VENDA 123", prompts)
		}()
	}
	wg.Wait()
}

func TestExtractProducts_DoesNotMutateSharedModel(t *testing.T) {
	t.Parallel()

	c := newOfflineClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _ = c.ExtractProducts(ctx, "PEDIDO DE VENDA 123", llm.PromptConfig{Task: "Extrair produtos."})

	if c.model.SystemInstruction != nil {
		t.Fatal("per-call system instruction leaked into the shared model")
	}
}
