package product

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseNumber converts a raw JSON value into a float64. Numbers pass through;
// strings go through Brazilian currency cleanup; anything else is 0. Negative
// results clamp to 0 since quantities and prices are non-negative by
// contract.
func ParseNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case int:
		f = float64(t)
	case json.Number:
		f, _ = t.Float64()
	case string:
		f = parseBRLString(t)
	default:
		return 0
	}
	if f < 0 {
		return 0
	}
	return f
}

// parseBRLString parses currency text the way it appears on Brazilian sales
// orders: "R$ 1.234,56" → 1234.56. Plain decimal strings ("12.5") parse
// directly. The value is taken at face value, never divided by 100.
func parseBRLString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// keep digits, separators and sign; drops "R$", spaces, unit suffixes
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	// comma present: treat it as the decimal separator and dots as thousands
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseString converts a raw JSON value into a trimmed string; null and
// non-string values become "".
func ParseString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// FormatBRL renders a value as Brazilian currency text for reports:
// 1234.5 → "R$ 1.234,50".
func FormatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
