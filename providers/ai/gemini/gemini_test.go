package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

func TestSendMessage_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello gemini", req.Contents[0].Parts[0].Text)

		json.NewEncoder(w).Encode(generateContentResponse{
			ModelVersion: "gemini-2.0-flash",
			Candidates: []candidate{{
				Content:      &content{Role: "model", Parts: []part{{Text: "hello human"}}},
				FinishReason: "STOP",
			}},
		})
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)

	resp, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Model:    "gemini-2.0-flash",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello gemini"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello human", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
}

func TestSendMessage_MissingKey(t *testing.T) {
	provider := &GeminiProvider{baseURL: "http://unused", client: http.DefaultClient}

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "x"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestSendMessage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid model"}}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("k").WithBaseURL(server.URL)

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Model:    "gemini-nope",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "x"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model")
}

func TestSendMessage_DefaultModel(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(generateContentResponse{
			Candidates: []candidate{{Content: &content{Parts: []part{{Text: "ok"}}}, FinishReason: "STOP"}},
		})
	}))
	defer server.Close()

	provider := New().WithAPIKey("k").WithBaseURL(server.URL)
	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/models/"+defaultModel+":generateContent", gotPath)
}
