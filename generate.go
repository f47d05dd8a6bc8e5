package aiwand

import (
	"context"
	"fmt"
	"strings"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// Generate produces free-form text from a prompt.
func Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: generation prompt", ErrEmptyInput)
	}

	o := buildOptions(opts)

	s, err := newSession(o, 0.7, 500)
	if err != nil {
		return "", err
	}

	return s.client.SendText(ctx, ai.ChatRequest{
		Model:    s.model,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: prompt, Images: o.images}},
	})
}
