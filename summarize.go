package aiwand

import (
	"context"
	"fmt"
	"strings"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// SummaryStyle selects the shape of a summary.
type SummaryStyle string

const (
	StyleConcise      SummaryStyle = "concise"
	StyleDetailed     SummaryStyle = "detailed"
	StyleBulletPoints SummaryStyle = "bullet-points"
)

var stylePrompts = map[SummaryStyle]string{
	StyleConcise:      "Provide a concise summary of the following text:",
	StyleDetailed:     "Provide a detailed summary of the following text:",
	StyleBulletPoints: "Summarize the following text in bullet points:",
}

// WithStyle sets the summary style. Unrecognized styles fall back to
// [StyleConcise].
func WithStyle(style SummaryStyle) Option {
	return func(o *options) { o.style = style }
}

// WithMaxWords asks the model to keep the summary under n words. This is an
// instruction to the model, not a hard limit.
func WithMaxWords(n int) Option {
	return func(o *options) { o.maxWords = n }
}

// Summarize condenses text using the resolved provider. The default style is
// concise; summaries run at low temperature for stable output.
func Summarize(ctx context.Context, text string, opts ...Option) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text to summarize", ErrEmptyInput)
	}

	o := buildOptions(opts)

	prompt, ok := stylePrompts[o.style]
	if !ok {
		prompt = stylePrompts[StyleConcise]
	}
	if o.maxWords > 0 {
		prompt += fmt.Sprintf(" Keep the summary under %d words.", o.maxWords)
	}
	if o.systemPrompt == "" {
		o.systemPrompt = prompt
	}

	s, err := newSession(o, 0.3, 2000)
	if err != nil {
		return "", err
	}

	return s.client.SendText(ctx, ai.ChatRequest{
		Model:    s.model,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: text, Images: o.images}},
	})
}
