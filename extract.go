package aiwand

import (
	"context"
	"fmt"
	"strings"

	"github.com/onlyoneaman/aiwand/core/client"
	"github.com/onlyoneaman/aiwand/core/parse"
	"github.com/onlyoneaman/aiwand/providers/ai"
	"github.com/onlyoneaman/aiwand/providers/fetch"
)

// ExtractRequest names the material to extract structured data from. At
// least one of Content or Links must be set.
type ExtractRequest struct {
	// Content is inline text to extract from.
	Content string

	// Links are URLs or local file paths fetched and included as sources.
	// Web pages are converted to Markdown before extraction.
	Links []string
}

const extractSystemPrompt = "You are an expert data extraction specialist. You excel at identifying, " +
	"analyzing, and extracting structured information from unstructured text. " +
	"You provide accurate, well-organized data while preserving context and " +
	"maintaining data integrity. You follow the specified format requirements precisely."

// Extract pulls structured data out of arbitrary content and returns it as a
// generic JSON object. Use [ExtractAs] when the output shape is known ahead
// of time.
func Extract(ctx context.Context, req ExtractRequest, opts ...Option) (map[string]any, error) {
	combined, err := gatherSources(ctx, req)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	if o.systemPrompt == "" {
		o.systemPrompt = extractSystemPrompt
	}

	s, err := newSession(o, 0.7, 2000)
	if err != nil {
		return nil, err
	}

	content, err := s.client.SendText(ctx, ai.ChatRequest{
		Model:          s.model,
		Messages:       []ai.Message{{Role: ai.RoleUser, Content: buildExtractPrompt(combined)}},
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	result, err := parse.StringAs[map[string]any](content)
	if err != nil {
		return nil, fmt.Errorf("aiwand: extracted output is not valid JSON: %w", err)
	}
	return result, nil
}

// ExtractAs pulls structured data out of arbitrary content into the given
// type, using schema-constrained output.
func ExtractAs[T any](ctx context.Context, req ExtractRequest, opts ...Option) (*T, error) {
	combined, err := gatherSources(ctx, req)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	if o.systemPrompt == "" {
		o.systemPrompt = extractSystemPrompt
	}

	s, err := newSession(o, 0.7, 2000)
	if err != nil {
		return nil, err
	}

	sc := client.FromBaseClient[T](s.client)
	response, err := sc.Send(ctx, ai.ChatRequest{
		Model:    s.model,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: buildExtractPrompt(combined)}},
	})
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

// gatherSources assembles the extraction corpus: inline content first, then
// each link fetched in order. A link that cannot be fetched fails the whole
// call rather than extracting from partial material.
func gatherSources(ctx context.Context, req ExtractRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" && len(req.Links) == 0 {
		return "", fmt.Errorf("%w: must provide content or links", ErrEmptyInput)
	}

	var sections []string
	if strings.TrimSpace(req.Content) != "" {
		sections = append(sections, "=== Main Content ===\n"+req.Content)
	}

	for i, link := range req.Links {
		doc, err := fetch.Resolve(ctx, link)
		if err != nil {
			return "", fmt.Errorf("aiwand: fetching source %d (%s): %w", i+1, link, err)
		}
		sections = append(sections, fmt.Sprintf("=== Source %d: %s ===\n%s", i+1, link, doc.Content))
	}

	if len(sections) == 0 {
		return "", fmt.Errorf("%w: no usable content found", ErrEmptyInput)
	}
	return strings.Join(sections, "\n\n"), nil
}

func buildExtractPrompt(combined string) string {
	return "Extract relevant structured data from the following content.\n\n" +
		"Organize the extracted data in a clear, logical structure and return it as JSON. " +
		"Use appropriate categories and present the information in a way that is " +
		"easy to understand and use. Include any relevant metadata or context.\n\n" +
		"Content to extract from:\n" + combined
}
