package llm

import "context"

// PromptConfig carries the four prompt fragments set by the administrator.
// They are combined into a single system instruction per request; the
// pipeline treats them as read-only for the whole run.
type PromptConfig struct {
	Task     string // what the model is for
	Rules    string // processing rules
	Format   string // output format description
	Fallback string // contingency / error-handling rules
}

// ProductExtractor is the interface the pipeline depends on. Implementations
// send the document text plus the composed prompt to one model backend and
// return the raw response text, before any sanitizing.
type ProductExtractor interface {
	ExtractProducts(ctx context.Context, text string, prompts PromptConfig) (string, error)
}
