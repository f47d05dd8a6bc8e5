package openai

import (
	"encoding/json"
	"fmt"
	"math"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// requestToOpenAI converts a generic ai.ChatRequest to an SDK
// ChatCompletionRequest. The system prompt becomes the first message.
func requestToOpenAI(request ai.ChatRequest) (goopenai.ChatCompletionRequest, error) {
	req := goopenai.ChatCompletionRequest{
		Model: request.Model,
	}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: request.SystemPrompt,
		})
	}

	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, messageToOpenAI(msg))
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature != nil {
			req.Temperature = nonZeroFloat(*cfg.Temperature)
		}
		if cfg.TopP != nil {
			req.TopP = nonZeroFloat(*cfg.TopP)
		}
		req.MaxTokens = cfg.MaxTokens
	}

	if request.ResponseFormat != nil {
		format, err := responseFormatToOpenAI(request.ResponseFormat)
		if err != nil {
			return req, err
		}
		req.ResponseFormat = format
	}

	return req, nil
}

// nonZeroFloat maps an explicit 0 to the smallest positive float32. The SDK
// request fields use omitempty, which would otherwise drop a literal 0 from
// the payload and let the API default apply instead.
func nonZeroFloat(v float32) float32 {
	if v == 0 {
		return math.SmallestNonzeroFloat32
	}
	return v
}

// messageToOpenAI converts a single generic message. Messages carrying image
// attachments are sent as MultiContent parts; plain text otherwise.
func messageToOpenAI(msg ai.Message) goopenai.ChatCompletionMessage {
	out := goopenai.ChatCompletionMessage{
		Role: string(msg.Role),
	}

	if len(msg.Images) == 0 {
		out.Content = msg.Content
		return out
	}

	parts := []goopenai.ChatMessagePart{}
	if msg.Content != "" {
		parts = append(parts, goopenai.ChatMessagePart{
			Type: goopenai.ChatMessagePartTypeText,
			Text: msg.Content,
		})
	}

	for _, img := range msg.Images {
		parts = append(parts, goopenai.ChatMessagePart{
			Type: goopenai.ChatMessagePartTypeImageURL,
			ImageURL: &goopenai.ChatMessageImageURL{
				URL:    imageToURL(img),
				Detail: goopenai.ImageURLDetailAuto,
			},
		})
	}

	out.MultiContent = parts
	return out
}

// imageToURL renders an ImageData as an URL the API accepts: the URL itself
// when referenced, or a base64 data URL for inline content.
func imageToURL(img ai.ImageData) string {
	if img.URL != "" {
		return img.URL
	}
	mime := img.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, img.Data)
}

// responseFormatToOpenAI maps the generic response format to the SDK type.
// A schema always selects json_schema mode; a bare type hint of json_object
// is passed through.
func responseFormatToOpenAI(format *ai.ResponseFormat) (*goopenai.ChatCompletionResponseFormat, error) {
	if format.OutputSchema == nil {
		if format.Type == "json_object" {
			return &goopenai.ChatCompletionResponseFormat{
				Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
			}, nil
		}
		return nil, nil
	}

	schemaBytes, err := json.Marshal(format.OutputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output schema: %w", err)
	}

	return &goopenai.ChatCompletionResponseFormat{
		Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
			Name:   "response",
			Schema: json.RawMessage(schemaBytes),
			Strict: format.Strict,
		},
	}, nil
}

// responseToGeneric converts an SDK ChatCompletionResponse to the generic
// ai.ChatResponse. Only the first choice is used.
func responseToGeneric(resp goopenai.ChatCompletionResponse) *ai.ChatResponse {
	choice := resp.Choices[0]

	result := &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Created:      resp.Created,
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Refusal:      choice.Message.Refusal,
	}

	if resp.Usage.TotalTokens > 0 {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return result
}
