package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/onlyoneaman/aiwand/core/registry"
)

// Environment variables consulted during resolution.
const (
	EnvDefaultProvider = "AIWAND_DEFAULT_PROVIDER"

	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_API_BASE_URL"

	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvGeminiBaseURL = "GEMINI_API_BASE_URL"
)

// ErrNoCredentials is returned when no provider can be selected because no
// API key is configured anywhere.
var ErrNoCredentials = errors.New("aiwand: no AI provider configured, set OPENAI_API_KEY or GEMINI_API_KEY or run setup")

// ErrProviderUnknown is returned when a requested provider name is not
// recognized.
var ErrProviderUnknown = errors.New("aiwand: unknown provider")

// Resolved is the outcome of provider resolution: which provider to call,
// with which model and credentials.
type Resolved struct {
	Provider registry.Provider
	Model    string
	APIKey   string
	BaseURL  string
}

// Resolver selects a provider and model for a request. Dir points at the
// preference directory and Getenv reads the environment; both are injectable
// so resolution stays testable without touching the real home directory.
type Resolver struct {
	Dir    string
	Getenv func(string) string
}

// NewResolver returns a Resolver backed by the default preference directory
// and the process environment.
func NewResolver() (*Resolver, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return &Resolver{Dir: dir, Getenv: os.Getenv}, nil
}

// Resolve picks the provider and model for a request.
//
// Provider precedence, highest first:
//  1. explicitProvider, when non-empty. An unknown name is an error, never a
//     fallback.
//  2. The provider inferred from explicitModel, when the model is known.
//  3. The stored default_provider preference, when its API key is set.
//  4. The AIWAND_DEFAULT_PROVIDER environment variable, when its key is set.
//  5. The first provider with an API key in the environment, OpenAI before
//     Gemini.
//
// When none of these yields a provider, ErrNoCredentials is returned.
// The model is explicitModel when given, otherwise the stored model
// preference for the provider, otherwise the provider's default model.
// Resolve never performs network calls.
func (r *Resolver) Resolve(explicitProvider, explicitModel string) (*Resolved, error) {
	prefs := Load(r.Dir)

	provider, err := r.pickProvider(explicitProvider, explicitModel, prefs)
	if err != nil {
		return nil, err
	}

	model := explicitModel
	if model == "" {
		model = prefs.ModelFor(string(provider))
	}
	if model == "" {
		model = registry.DefaultModel(provider)
	}

	return &Resolved{
		Provider: provider,
		Model:    model,
		APIKey:   r.Getenv(keyEnv(provider)),
		BaseURL:  r.Getenv(baseURLEnv(provider)),
	}, nil
}

func (r *Resolver) pickProvider(explicitProvider, explicitModel string, prefs *Preferences) (registry.Provider, error) {
	if explicitProvider != "" {
		provider, err := registry.Parse(explicitProvider)
		if err != nil {
			return registry.ProviderUnknown, fmt.Errorf("%w: %q", ErrProviderUnknown, explicitProvider)
		}
		return provider, nil
	}

	if explicitModel != "" {
		if provider := registry.Infer(explicitModel); provider != registry.ProviderUnknown {
			return provider, nil
		}
	}

	// Stored and environment defaults only apply when their key is present,
	// otherwise resolution falls through to whichever provider has one.
	for _, name := range []string{prefs.DefaultProvider, r.Getenv(EnvDefaultProvider)} {
		if name == "" {
			continue
		}
		provider, err := registry.Parse(name)
		if err != nil {
			continue
		}
		if r.hasCredentials(provider) {
			return provider, nil
		}
	}

	for _, provider := range registry.All {
		if r.hasCredentials(provider) {
			return provider, nil
		}
	}

	return registry.ProviderUnknown, ErrNoCredentials
}

func (r *Resolver) hasCredentials(provider registry.Provider) bool {
	return r.Getenv(keyEnv(provider)) != ""
}

func keyEnv(provider registry.Provider) string {
	switch provider {
	case registry.ProviderOpenAI:
		return EnvOpenAIAPIKey
	case registry.ProviderGemini:
		return EnvGeminiAPIKey
	default:
		return ""
	}
}

func baseURLEnv(provider registry.Provider) string {
	switch provider {
	case registry.ProviderOpenAI:
		return EnvOpenAIBaseURL
	case registry.ProviderGemini:
		return EnvGeminiBaseURL
	default:
		return ""
	}
}
