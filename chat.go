package aiwand

import (
	"context"
	"fmt"
	"strings"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// Chat sends one user message, optionally preceded by earlier turns supplied
// via [WithHistory], and returns the model's reply.
func Chat(ctx context.Context, message string, opts ...Option) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: chat message", ErrEmptyInput)
	}

	o := buildOptions(opts)

	s, err := newSession(o, 0.7, 1000)
	if err != nil {
		return "", err
	}

	messages := make([]ai.Message, 0, len(o.history)+1)
	messages = append(messages, o.history...)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message, Images: o.images})

	return s.client.SendText(ctx, ai.ChatRequest{
		Model:    s.model,
		Messages: messages,
	})
}
