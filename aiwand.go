package aiwand

import (
	"fmt"

	"github.com/onlyoneaman/aiwand/core/client"
	"github.com/onlyoneaman/aiwand/core/config"
	"github.com/onlyoneaman/aiwand/core/registry"
	"github.com/onlyoneaman/aiwand/internal/utils"
	"github.com/onlyoneaman/aiwand/providers/ai"
	"github.com/onlyoneaman/aiwand/providers/ai/gemini"
	"github.com/onlyoneaman/aiwand/providers/ai/openai"
)

// Option customizes a single helper call. Options that do not apply to a
// helper are ignored by it.
type Option func(*options)

type options struct {
	provider     string
	model        string
	temperature  *float32
	maxTokens    int
	systemPrompt string
	history      []ai.Message
	images       []ai.ImageData

	style    SummaryStyle
	maxWords int

	resolver    *config.Resolver
	aiProvider  ai.Provider
	middlewares []client.Middleware
}

// WithProvider forces a specific provider by name, e.g. "openai" or
// "gemini". Unknown names fail the call.
func WithProvider(name string) Option {
	return func(o *options) { o.provider = name }
}

// WithModel forces a specific model. When the model name is recognized its
// provider is inferred automatically.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithTemperature overrides the helper's default sampling temperature.
func WithTemperature(temperature float32) Option {
	return func(o *options) { o.temperature = utils.Ptr(temperature) }
}

// WithMaxTokens overrides the helper's default completion token limit.
func WithMaxTokens(maxTokens int) Option {
	return func(o *options) { o.maxTokens = maxTokens }
}

// WithSystemPrompt replaces the helper's built-in system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *options) { o.systemPrompt = prompt }
}

// WithHistory prepends previous conversation turns to the request. Used by
// Chat to continue a conversation.
func WithHistory(messages ...ai.Message) Option {
	return func(o *options) { o.history = append(o.history, messages...) }
}

// WithImages attaches images to the user message for vision-capable models.
func WithImages(images ...ai.ImageData) Option {
	return func(o *options) { o.images = append(o.images, images...) }
}

// WithResolver substitutes the provider resolver. Mainly useful in tests to
// avoid the real preference directory and environment.
func WithResolver(resolver *config.Resolver) Option {
	return func(o *options) { o.resolver = resolver }
}

// WithCustomProvider bypasses resolution entirely and sends requests through
// the given provider. The model, when set, is still passed on the request.
func WithCustomProvider(provider ai.Provider) Option {
	return func(o *options) { o.aiProvider = provider }
}

// WithMiddlewares installs middlewares, such as logging, on the underlying
// client.
func WithMiddlewares(middlewares ...client.Middleware) Option {
	return func(o *options) { o.middlewares = append(o.middlewares, middlewares...) }
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// session is a resolved, ready-to-send client plus the model to request.
type session struct {
	client *client.Client
	model  string
}

// newSession resolves provider and credentials, then assembles a client with
// the helper's generation defaults. Explicit WithTemperature and
// WithMaxTokens override the defaults.
func newSession(o *options, defaultTemperature float32, defaultMaxTokens int) (*session, error) {
	temperature := defaultTemperature
	if o.temperature != nil {
		temperature = *o.temperature
	}
	maxTokens := defaultMaxTokens
	if o.maxTokens > 0 {
		maxTokens = o.maxTokens
	}
	generation := &ai.GenerationConfig{
		Temperature: utils.Ptr(temperature),
		MaxTokens:   maxTokens,
	}

	clientOpts := []client.Option{
		client.WithGenerationConfig(generation),
		client.WithMiddlewares(o.middlewares...),
	}
	if o.systemPrompt != "" {
		clientOpts = append(clientOpts, client.WithSystemPrompt(o.systemPrompt))
	}

	if o.aiProvider != nil {
		c, err := client.New(o.aiProvider, clientOpts...)
		if err != nil {
			return nil, err
		}
		return &session{client: c, model: o.model}, nil
	}

	resolver := o.resolver
	if resolver == nil {
		var err error
		resolver, err = config.NewResolver()
		if err != nil {
			return nil, err
		}
	}

	resolved, err := resolver.Resolve(o.provider, o.model)
	if err != nil {
		return nil, err
	}

	provider, err := providerFor(resolved)
	if err != nil {
		return nil, err
	}

	c, err := client.New(provider, clientOpts...)
	if err != nil {
		return nil, err
	}
	return &session{client: c, model: resolved.Model}, nil
}

func providerFor(resolved *config.Resolved) (ai.Provider, error) {
	var provider ai.Provider
	switch resolved.Provider {
	case registry.ProviderOpenAI:
		provider = openai.New()
	case registry.ProviderGemini:
		provider = gemini.New()
	default:
		return nil, fmt.Errorf("aiwand: no provider implementation for %q", resolved.Provider)
	}

	if resolved.APIKey != "" {
		provider = provider.WithAPIKey(resolved.APIKey)
	}
	if resolved.BaseURL != "" {
		provider = provider.WithBaseURL(resolved.BaseURL)
	}
	return provider, nil
}
