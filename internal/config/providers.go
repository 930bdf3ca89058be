package config

import "strings"

// ProviderInfo describes one model backend selectable by the administrator.
type ProviderInfo struct {
	ID           string
	Name         string
	Models       []string
	DefaultModel string
}

// Catalog lists the supported providers and their known models. Order matters
// for display; "openai" stays first as the default.
var Catalog = []ProviderInfo{
	{
		ID:           "openai",
		Name:         "OpenAI",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4", "gpt-3.5-turbo"},
		DefaultModel: "gpt-4o",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Models:       []string{"claude-3-opus-20240229", "claude-3-sonnet-20240229", "claude-3-haiku-20240307"},
		DefaultModel: "claude-3-sonnet-20240229",
	},
	{
		ID:           "google",
		Name:         "Google Gemini",
		Models:       []string{"gemini-pro", "gemini-flash", "gemini-ultra"},
		DefaultModel: "gemini-pro",
	},
	{
		ID:           "deepseek",
		Name:         "DeepSeek",
		Models:       []string{"deepseek-chat", "deepseek-coder", "deepseek-67b"},
		DefaultModel: "deepseek-chat",
	},
	{
		ID:           "meta",
		Name:         "Meta Llama",
		Models:       []string{"llama-3-70b", "llama-3-8b", "llama-2-70b"},
		DefaultModel: "llama-3-70b",
	},
	{
		ID:           "mistral",
		Name:         "Mistral AI",
		Models:       []string{"mistral-large", "mistral-medium", "mistral-small"},
		DefaultModel: "mistral-large",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Models:       []string{"mixtral-8x7b-32768", "llama2-70b-4096", "gemma-7b-it"},
		DefaultModel: "mixtral-8x7b-32768",
	},
	{
		ID:           "together",
		Name:         "Together AI",
		Models:       []string{"meta-llama/Llama-2-70b-chat-hf", "mistralai/Mixtral-8x7B-Instruct-v0.1"},
		DefaultModel: "meta-llama/Llama-2-70b-chat-hf",
	},
	{
		ID:           "fireworks",
		Name:         "Fireworks AI",
		Models:       []string{"accounts/fireworks/models/llama-v2-70b-chat", "accounts/fireworks/models/mixtral-8x7b-instruct"},
		DefaultModel: "accounts/fireworks/models/llama-v2-70b-chat",
	},
	{
		ID:           "nvidia",
		Name:         "NVIDIA NIM",
		Models:       []string{"nvidia/llama3-chatqa-1.5-70b", "nvidia/llama3-chatqa-1.5-8b"},
		DefaultModel: "nvidia/llama3-chatqa-1.5-70b",
	},
}

// LookupProvider returns the catalog entry for a provider id.
func LookupProvider(id string) (ProviderInfo, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderInfo{}, false
}

// ValidAPIKeyShape performs a cheap shape check on an API key so obviously
// wrong credentials fail before the first model call. It never proves a key
// works.
func ValidAPIKeyShape(provider, apiKey string) bool {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return false
	}
	switch provider {
	case "openai", "deepseek":
		return strings.HasPrefix(key, "sk-")
	case "anthropic":
		return strings.HasPrefix(key, "sk-ant-")
	case "google":
		return strings.HasPrefix(key, "AIzaSy")
	case "groq":
		return strings.HasPrefix(key, "gsk_")
	case "meta", "mistral", "together", "fireworks", "nvidia":
		return len(key) > 20
	default:
		return len(key) > 10
	}
}
