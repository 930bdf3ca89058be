package llm

// BuildProductListSchema returns a JSON-Schema (draft 2020-12 subset) for the
// product envelope as a generic map. Validation is best-effort: numeric
// fields accept numbers, strings (currency text) or null, and unknown extra
// keys are tolerated; only the envelope shape and a non-empty description are
// firm.
func BuildProductListSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"produtos"},
		"properties": map[string]any{
			"produtos": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"descricao"},
					"properties": map[string]any{
						"codigo":         nullableString(),
						"referencia":     nullableString(),
						"descricao":      map[string]any{"type": "string", "minLength": 1},
						"quantidade":     looseNumberProp(),
						"valor_unitario": looseNumberProp(),
						"valor_total":    looseNumberProp(),
					},
				},
			},
		},
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

func looseNumberProp() map[string]any {
	return map[string]any{"type": []string{"number", "string", "null"}}
}
