package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/onlyoneaman/aiwand/core/parse"
	"github.com/onlyoneaman/aiwand/internal/jsonschema"
	"github.com/onlyoneaman/aiwand/providers/ai"
)

// ErrStructuredParse is wrapped by every error returned when a provider's
// response cannot be coerced into the requested schema. Test with errors.Is.
var ErrStructuredParse = errors.New("aiwand: structured output does not conform to the requested schema")

// StructuredClient wraps a base Client and provides type-safe structured
// output. The generic parameter T defines the expected response structure:
// its JSON schema is generated once at creation time, attached to every
// request as the response format, and responses are parsed back into T.
//
// Example:
//
//	type Review struct {
//	    Title string   `json:"title" jsonschema:"required"`
//	    Tags  []string `json:"tags" jsonschema:"required"`
//	}
//
//	sc, _ := client.NewStructured[Review](provider)
//	resp, err := sc.Send(ctx, ai.ChatRequest{Messages: msgs})
//	fmt.Println(resp.Data.Title)
type StructuredClient[T any] struct {
	base   *Client
	schema *jsonschema.Schema
}

// NewStructured creates a StructuredClient[T] by first creating a base
// Client with the provided provider and options, then wrapping it.
func NewStructured[T any](provider ai.Provider, opts ...Option) (*StructuredClient[T], error) {
	base, err := New(provider, opts...)
	if err != nil {
		return nil, err
	}
	return FromBaseClient[T](base), nil
}

// FromBaseClient wraps an already-configured base client for structured
// output of type T.
func FromBaseClient[T any](base *Client) *StructuredClient[T] {
	if base == nil {
		return nil
	}
	return &StructuredClient[T]{
		base:   base,
		schema: jsonschema.For[T](),
	}
}

// Schema returns the JSON schema used for structured output. Useful for
// debugging or introspection.
func (sc *StructuredClient[T]) Schema() *jsonschema.Schema {
	return sc.schema
}

// Send dispatches the request with the schema attached as response format
// and parses the response content into T. Requests that already carry a
// response format keep it, but the content is still parsed as T.
func (sc *StructuredClient[T]) Send(ctx context.Context, request ai.ChatRequest) (*ai.StructuredChatResponse[T], error) {
	if request.ResponseFormat == nil {
		request.ResponseFormat = &ai.ResponseFormat{
			OutputSchema: sc.schema,
			Strict:       true,
			Type:         "json_schema",
		}
	}

	resp, err := sc.base.Send(ctx, request)
	if err != nil {
		return nil, err
	}

	return sc.parseResponse(resp, request.ResponseFormat.OutputSchema)
}

// parseResponse coerces the response content into T and verifies that every
// field the schema marks required was actually present in the payload.
func (sc *StructuredClient[T]) parseResponse(resp *ai.ChatResponse, schema *jsonschema.Schema) (*ai.StructuredChatResponse[T], error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: response is nil", ErrStructuredParse)
	}

	data, err := parse.StringAs[T](resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuredParse, err)
	}

	if schema != nil {
		if err := checkRequired(schema, resp.Content); err != nil {
			return nil, err
		}
	}

	return &ai.StructuredChatResponse[T]{
		ChatResponse: *resp,
		Data:         &data,
	}, nil
}

// checkRequired verifies the presence of required top-level properties in
// the raw payload. encoding/json silently zero-fills missing fields, so a
// schema violation would otherwise go unnoticed.
func checkRequired(schema *jsonschema.Schema, content string) error {
	if len(schema.Required) == 0 {
		return nil
	}

	// Check the same payload the parser decoded, repairs included, so a
	// repaired object missing a required field still fails.
	cleaned, err := parse.CleanJSON(content)
	if err != nil {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		// Non-object payloads are legal for scalar and array schemas.
		return nil
	}

	for _, field := range schema.Required {
		if _, ok := raw[field]; !ok {
			return fmt.Errorf("%w: missing required field %q", ErrStructuredParse, field)
		}
	}
	return nil
}
