package aiwand

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

func TestExtractFromContent(t *testing.T) {
	var captured ai.ChatRequest
	provider := capturing(&captured, `{"name": "John Doe", "email": "john@example.com"}`)

	result, err := Extract(context.Background(), ExtractRequest{
		Content: "John Doe, email: john@example.com",
	}, WithCustomProvider(provider))
	require.NoError(t, err)

	assert.Equal(t, "John Doe", result["name"])
	assert.Equal(t, "john@example.com", result["email"])

	assert.Contains(t, captured.Messages[0].Content, "=== Main Content ===")
	assert.Contains(t, captured.Messages[0].Content, "john@example.com")
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestExtractRequiresInput(t *testing.T) {
	_, err := Extract(context.Background(), ExtractRequest{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestExtractFromLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>Contact: jane@example.com</p></body></html>"))
	}))
	defer server.Close()

	var captured ai.ChatRequest
	provider := capturing(&captured, `{"email": "jane@example.com"}`)

	result, err := Extract(context.Background(), ExtractRequest{
		Links: []string{server.URL},
	}, WithCustomProvider(provider))
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", result["email"])
	assert.Contains(t, captured.Messages[0].Content, "=== Source 1: "+server.URL)
	assert.Contains(t, captured.Messages[0].Content, "jane@example.com")
}

func TestExtractFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe, CEO"), 0o600))

	var captured ai.ChatRequest
	provider := capturing(&captured, `{"name": "Jane Doe", "title": "CEO"}`)

	result, err := Extract(context.Background(), ExtractRequest{
		Links: []string{path},
	}, WithCustomProvider(provider))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result["name"])
	assert.Contains(t, captured.Messages[0].Content, "Jane Doe, CEO")
}

func TestExtractBadLinkFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	provider := replyWith(`{}`)
	_, err := Extract(context.Background(), ExtractRequest{
		Links: []string{server.URL},
	}, WithCustomProvider(provider))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching source 1")
}

func TestExtractRepairsSloppyJSON(t *testing.T) {
	provider := replyWith("```json\n{\"name\": \"Ada\",}\n```")

	result, err := Extract(context.Background(), ExtractRequest{
		Content: "Ada Lovelace",
	}, WithCustomProvider(provider))
	require.NoError(t, err)
	assert.Equal(t, "Ada", result["name"])
}

type contact struct {
	Name  string `json:"name" jsonschema:"description=Full name,required"`
	Email string `json:"email" jsonschema:"description=Email address,required"`
}

func TestExtractAs(t *testing.T) {
	var captured ai.ChatRequest
	provider := capturing(&captured, `{"name": "John Doe", "email": "john@example.com"}`)

	result, err := ExtractAs[contact](context.Background(), ExtractRequest{
		Content: "John Doe <john@example.com>",
	}, WithCustomProvider(provider))
	require.NoError(t, err)

	assert.Equal(t, "John Doe", result.Name)
	assert.Equal(t, "john@example.com", result.Email)

	// The typed variant constrains output with a schema.
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_schema", captured.ResponseFormat.Type)
	require.NotNil(t, captured.ResponseFormat.OutputSchema)
	assert.Contains(t, captured.ResponseFormat.OutputSchema.Required, "email")
}
