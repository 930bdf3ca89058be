package llm

import "strings"

// EmptyResult is the canonical "no products found" payload. The sanitizer
// falls back to it whenever a response cannot yield JSON, so downstream
// parsing never sees raw provider garbage.
const EmptyResult = `{"produtos": []}`

// CleanResponse recovers a JSON candidate from an arbitrary model response.
// Models wrap JSON in prose or markdown fences, and failing providers return
// whole HTML error pages; all of that must degrade to either the embedded
// object or the empty sentinel, never to a downstream parse panic.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyResult
	}

	s = stripFences(s)

	if looksLikeErrorContent(s) {
		return EmptyResult
	}

	if span, ok := firstBalancedObject(s); ok {
		return span
	}
	return EmptyResult
}

// stripFences removes markdown code-fence lines (``` or ```json) while
// keeping everything between them.
func stripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "```") {
			continue
		}
		kept = append(kept, ln)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// looksLikeErrorContent flags HTML error pages and quota/auth error messages
// that some providers return with a 200 status. Content that still carries a
// brace may embed usable JSON and is left for the balanced scan.
func looksLikeErrorContent(s string) bool {
	l := strings.ToLower(s)
	if strings.Contains(l, "<html") || strings.Contains(l, "<!doctype") || strings.Contains(l, "<body") {
		return true
	}
	if strings.ContainsRune(s, '{') {
		return false
	}
	for _, marker := range []string{"quota", "credit", "unauthorized", "invalid api key", "rate limit", "error"} {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}

// firstBalancedObject returns the first balanced {...} span in s, tracking
// string literals and escapes so braces inside values don't break the count.
func firstBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
