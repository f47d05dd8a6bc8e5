package client

import (
	"context"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// SendFunc is the signature of a provider call as seen by middleware.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware wraps a SendFunc with cross-cutting behavior (e.g. logging).
// Middleware must not retry or suppress errors: failure semantics are
// propagate-immediately throughout the library.
type Middleware func(next SendFunc) SendFunc

// buildSendChain composes the middlewares around the provider's SendMessage.
// The first middleware in the slice becomes the outermost wrapper.
func buildSendChain(provider ai.Provider, middlewares []Middleware) SendFunc {
	send := provider.SendMessage
	for i := len(middlewares) - 1; i >= 0; i-- {
		send = middlewares[i](send)
	}
	return send
}
