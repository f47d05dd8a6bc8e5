package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// Client is the request normalizer: it wraps an ai.Provider with request
// defaults and a middleware chain. A Client holds no conversation state;
// every call is independent, and a single outbound provider call is made per
// Send invocation.
type Client struct {
	provider ai.Provider
	send     SendFunc

	systemPrompt string
	generation   *ai.GenerationConfig
}

// Options collects the functional options accepted by New.
type Options struct {
	SystemPrompt     string
	GenerationConfig *ai.GenerationConfig
	Middlewares      []Middleware
}

// Option mutates Options. See WithSystemPrompt, WithGenerationConfig,
// WithMiddlewares.
type Option func(*Options)

// WithSystemPrompt sets a default system prompt applied to requests that do
// not carry their own.
func WithSystemPrompt(prompt string) Option {
	return func(o *Options) { o.SystemPrompt = prompt }
}

// WithGenerationConfig sets default generation parameters applied to
// requests that do not carry their own.
func WithGenerationConfig(cfg *ai.GenerationConfig) Option {
	return func(o *Options) { o.GenerationConfig = cfg }
}

// WithMiddlewares appends middlewares to the send chain. Middlewares run in
// the order given, outermost first.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *Options) { o.Middlewares = append(o.Middlewares, middlewares...) }
}

// New creates a Client around the given provider.
func New(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("aiwand: provider must not be nil")
	}

	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		provider:     provider,
		send:         buildSendChain(provider, options.Middlewares),
		systemPrompt: options.SystemPrompt,
		generation:   options.GenerationConfig,
	}, nil
}

// Provider returns the provider this client dispatches to.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Send applies the client defaults to request and dispatches it through the
// middleware chain to the provider. Provider failures propagate directly;
// nothing is retried.
func (c *Client) Send(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if len(request.Messages) == 0 {
		return nil, fmt.Errorf("aiwand: request has no messages")
	}

	if request.SystemPrompt == "" {
		request.SystemPrompt = c.systemPrompt
	}
	if request.GenerationConfig == nil {
		request.GenerationConfig = c.generation
	}

	response, err := c.send(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("aiwand: provider %s request failed: %w", c.provider.Name(), err)
	}
	return response, nil
}

// SendText is a convenience wrapper around Send that returns the trimmed
// text content of the response.
func (c *Client) SendText(ctx context.Context, request ai.ChatRequest) (string, error) {
	response, err := c.Send(ctx, request)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Content), nil
}
