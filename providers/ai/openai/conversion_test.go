package openai

import (
	"encoding/json"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyoneaman/aiwand/internal/jsonschema"
	"github.com/onlyoneaman/aiwand/internal/utils"
	"github.com/onlyoneaman/aiwand/providers/ai"
)

func TestRequestToOpenAI_SystemPromptFirst(t *testing.T) {
	req, err := requestToOpenAI(ai.ChatRequest{
		Model:        "gpt-4o",
		SystemPrompt: "You are terse.",
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: "hi"},
			{Role: ai.RoleAssistant, Content: "hello"},
			{Role: ai.RoleUser, Content: "how are you"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, goopenai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "You are terse.", req.Messages[0].Content)

	// Message ordering is preserved verbatim after the system prompt.
	assert.Equal(t, "hi", req.Messages[1].Content)
	assert.Equal(t, "hello", req.Messages[2].Content)
	assert.Equal(t, "how are you", req.Messages[3].Content)
}

func TestRequestToOpenAI_GenerationConfig(t *testing.T) {
	req, err := requestToOpenAI(ai.ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		GenerationConfig: &ai.GenerationConfig{
			Temperature: utils.Ptr(float32(0.3)),
			TopP:        utils.Ptr(float32(0.9)),
			MaxTokens:   2000,
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.3, req.Temperature, 0.001)
	assert.InDelta(t, 0.9, req.TopP, 0.001)
	assert.Equal(t, 2000, req.MaxTokens)
}

func TestRequestToOpenAI_ZeroTemperatureOnWire(t *testing.T) {
	req, err := requestToOpenAI(ai.ChatRequest{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		GenerationConfig: &ai.GenerationConfig{
			Temperature: utils.Ptr(float32(0)),
			MaxTokens:   1000,
		},
	})
	require.NoError(t, err)

	// An explicit 0 must survive the SDK's omitempty fields, so it is sent
	// as the smallest positive float rather than dropped.
	payload, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"temperature"`)
	assert.Less(t, req.Temperature, float32(1e-6))
	assert.Greater(t, req.Temperature, float32(0))
}

func TestRequestToOpenAI_UnsetTemperatureOmitted(t *testing.T) {
	req, err := requestToOpenAI(ai.ChatRequest{
		Model:            "gpt-4o",
		Messages:         []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		GenerationConfig: &ai.GenerationConfig{MaxTokens: 1000},
	})
	require.NoError(t, err)

	payload, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), `"temperature"`)
}

func TestRequestToOpenAI_SchemaSelectsJSONSchemaFormat(t *testing.T) {
	type doc struct {
		Title string   `json:"title" jsonschema:"required"`
		Tags  []string `json:"tags" jsonschema:"required"`
	}

	req, err := requestToOpenAI(ai.ChatRequest{
		Model:    "gpt-4o",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		ResponseFormat: &ai.ResponseFormat{
			OutputSchema: jsonschema.For[doc](),
			Strict:       true,
		},
	})
	require.NoError(t, err)

	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, goopenai.ChatCompletionResponseFormatTypeJSONSchema, req.ResponseFormat.Type)
	require.NotNil(t, req.ResponseFormat.JSONSchema)
	assert.True(t, req.ResponseFormat.JSONSchema.Strict)

	raw, err := json.Marshal(req.ResponseFormat.JSONSchema.Schema)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title"`)
	assert.Contains(t, string(raw), `"tags"`)
}

func TestRequestToOpenAI_JSONObjectHint(t *testing.T) {
	req, err := requestToOpenAI(ai.ChatRequest{
		Model:          "gpt-4o",
		Messages:       []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	require.NoError(t, err)

	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, goopenai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
}

func TestMessageToOpenAI_Images(t *testing.T) {
	msg := messageToOpenAI(ai.Message{
		Role:    ai.RoleUser,
		Content: "what is in this picture?",
		Images: []ai.ImageData{
			{MimeType: "image/jpeg", Data: "aGVsbG8="},
			{URL: "https://example.com/cat.png"},
		},
	})

	assert.Empty(t, msg.Content)
	require.Len(t, msg.MultiContent, 3)
	assert.Equal(t, goopenai.ChatMessagePartTypeText, msg.MultiContent[0].Type)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", msg.MultiContent[1].ImageURL.URL)
	assert.Equal(t, "https://example.com/cat.png", msg.MultiContent[2].ImageURL.URL)
}

func TestResponseToGeneric(t *testing.T) {
	resp := responseToGeneric(goopenai.ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Model:   "gpt-4o",
		Created: 1700000000,
		Choices: []goopenai.ChatCompletionChoice{
			{
				Message:      goopenai.ChatCompletionMessage{Content: "result text"},
				FinishReason: goopenai.FinishReasonStop,
			},
		},
		Usage: goopenai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	})

	assert.Equal(t, "chatcmpl-123", resp.Id)
	assert.Equal(t, "result text", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}
