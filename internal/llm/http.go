package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SendJSON posts a JSON payload to a chat-completions style endpoint and
// returns the raw response body. Any failure comes back already classified as
// a *ProviderError for the given provider id, so adapters surface exactly one
// error type no matter where the call broke: encoding, transport or a non-2xx
// status.
func SendJSON(ctx context.Context, client *http.Client, provider, url string, body any, headers map[string]string, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		logger.Error("llm.http.encode_error", "req_id", reqID, "provider", provider, "error", err)
		return nil, &ProviderError{Provider: provider, Kind: KindTransport, Message: "encode request payload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return nil, &ProviderError{Provider: provider, Kind: KindTransport, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger.Info("llm.http.request", "req_id", reqID, "provider", provider, "url", url, "content_length", len(bs))

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("llm.http.send_error",
			"req_id", reqID, "provider", provider, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, Classify(provider, 0, nil, err)
	}
	defer func(rc io.ReadCloser) {
		if cerr := rc.Close(); cerr != nil {
			logger.Warn("llm.http.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		pe := Classify(provider, resp.StatusCode, raw, fmt.Errorf("http status %d", resp.StatusCode))
		logger.Error("llm.http.error_status",
			"req_id", reqID,
			"provider", provider,
			"status", resp.StatusCode,
			"kind", pe.Kind,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, pe
	}

	logger.Info("llm.http.response",
		"req_id", reqID,
		"provider", provider,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raw, nil
}
