package registry

import (
	"fmt"
	"strings"
)

// Provider identifies an external AI API vendor; compatible with string.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"

	// ProviderUnknown is returned when a model name matches no known table
	// entry and no naming heuristic. Callers must then supply an explicit
	// provider; the registry never guesses.
	ProviderUnknown Provider = "unknown"
)

// All lists the providers this library can talk to, in resolution order.
var All = []Provider{ProviderOpenAI, ProviderGemini}

// openaiModels are the known OpenAI chat model identifiers.
// Kept as plain data so new releases are a one-line change.
var openaiModels = []string{
	// Reasoning models
	"o3-mini",
	"o3",
	"o1",
	"o1-mini",

	// GPT-4.1 series
	"gpt-4.1",
	"gpt-4.1-mini",

	// GPT-4o series
	"gpt-4o",
	"gpt-4o-mini",

	// Legacy but still capable
	"gpt-4-turbo",
	"gpt-4",
	"gpt-3.5-turbo",
}

// geminiModels are the known Gemini chat model identifiers.
var geminiModels = []string{
	// Gemini 2.5 series
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",

	// Gemini 2.0 series
	"gemini-2.0-flash-exp",
	"gemini-2.0-flash",
	"gemini-2.0-pro",

	// Legacy but still capable
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

var defaultModels = map[Provider]string{
	ProviderOpenAI: "gpt-4o",
	ProviderGemini: "gemini-2.0-flash",
}

// modelTable maps every known model identifier to its provider.
var modelTable = buildModelTable()

func buildModelTable() map[string]Provider {
	table := make(map[string]Provider, len(openaiModels)+len(geminiModels))
	for _, m := range openaiModels {
		table[m] = ProviderOpenAI
	}
	for _, m := range geminiModels {
		table[m] = ProviderGemini
	}
	return table
}

// openaiPrefixes and geminiPrefixes are the fallback naming heuristics used
// when a model is absent from the table. Only prefixes that are unambiguous
// across providers are listed.
var openaiPrefixes = []string{"gpt-", "o1-", "o3-", "o4-", "chatgpt-", "text-"}

var geminiPrefixes = []string{"gemini-", "gemma-", "imagen-", "learnlm-"}

// Infer maps a model name to its provider. The exact table is consulted
// first; on a miss, prefix heuristics are applied. Unrecognized names return
// [ProviderUnknown] rather than a guess.
func Infer(model string) Provider {
	name := strings.ToLower(strings.TrimSpace(model))
	if name == "" {
		return ProviderUnknown
	}

	if provider, ok := modelTable[name]; ok {
		return provider
	}

	for _, prefix := range openaiPrefixes {
		if strings.HasPrefix(name, prefix) {
			return ProviderOpenAI
		}
	}
	// Bare reasoning model names like "o1" or "o3" without a suffix.
	if len(name) == 2 && name[0] == 'o' && name[1] >= '0' && name[1] <= '9' {
		return ProviderOpenAI
	}

	for _, prefix := range geminiPrefixes {
		if strings.HasPrefix(name, prefix) {
			return ProviderGemini
		}
	}

	return ProviderUnknown
}

// Parse converts a user-supplied provider name into a Provider.
// Returns an error for anything that is not a known provider.
func Parse(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return ProviderUnknown, fmt.Errorf("aiwand: unsupported provider %q (expected one of: openai, gemini)", name)
	}
}

// SupportedModels returns the known model identifiers for a provider.
// The returned slice is a copy; callers may modify it.
func SupportedModels(provider Provider) []string {
	switch provider {
	case ProviderOpenAI:
		return append([]string(nil), openaiModels...)
	case ProviderGemini:
		return append([]string(nil), geminiModels...)
	default:
		return nil
	}
}

// DefaultModel returns the model used when neither the caller nor the stored
// preferences name one.
func DefaultModel(provider Provider) string {
	return defaultModels[provider]
}
