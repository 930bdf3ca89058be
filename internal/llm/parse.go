package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// ParseProducts runs the sanitizer over a raw model response and decodes the
// product list. A response that cannot be decoded even after sanitizing is a
// malformed response: the caller treats it as zero products, not a failure.
// Schema violations are logged and tolerated; the normalizer is the real
// gatekeeper for individual records.
func ParseProducts(raw string, logger *slog.Logger) ([]map[string]any, error) {
	if logger == nil {
		logger = slog.Default()
	}

	candidate := CleanResponse(raw)

	if err := ValidateJSONAgainstSchema(BuildProductListSchema(), []byte(candidate)); err != nil {
		logger.Warn("llm.parse.schema_mismatch", "error", err)
	}

	var envelope struct {
		Produtos []map[string]any `json:"produtos"`
	}
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return nil, fmt.Errorf("decode product envelope: %w", err)
	}
	return envelope.Produtos, nil
}
