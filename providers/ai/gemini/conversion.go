package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// requestToGemini converts an ai.ChatRequest to a Gemini generateContentRequest.
func requestToGemini(request ai.ChatRequest) generateContentRequest {
	req := generateContentRequest{}

	if request.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: request.SystemPrompt}},
		}
	}

	req.Contents = buildContents(request.Messages)
	req.GenerationConfig = buildGenerationConfig(request.GenerationConfig, request.ResponseFormat)

	return req
}

// buildContents converts ai.Message slice to Gemini content slice.
// Role mapping: user -> user, assistant -> model. A stray system message in
// the conversation body is downgraded to a user message; system prompts
// belong in SystemInstruction.
func buildContents(messages []ai.Message) []content {
	var contents []content

	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleAssistant:
			contents = append(contents, content{
				Role:  "model",
				Parts: []part{{Text: msg.Content}},
			})

		default:
			c := content{Role: "user"}
			if msg.Content != "" {
				c.Parts = append(c.Parts, part{Text: msg.Content})
			}
			for _, img := range msg.Images {
				c.Parts = append(c.Parts, imageToPart(img))
			}
			if len(c.Parts) > 0 {
				contents = append(contents, c)
			}
		}
	}

	return contents
}

// imageToPart converts an image attachment to a Gemini part. URL references
// take precedence over inline data when both are provided.
func imageToPart(img ai.ImageData) part {
	if img.URL != "" {
		return part{
			FileData: &fileData{
				MimeType: img.MimeType,
				FileURI:  img.URL,
			},
		}
	}
	return part{
		InlineData: &inlineData{
			MimeType: img.MimeType,
			Data:     img.Data,
		},
	}
}

// buildGenerationConfig converts ai.GenerationConfig and ai.ResponseFormat to
// a Gemini generationConfig. A structured-output schema forces JSON output.
func buildGenerationConfig(cfg *ai.GenerationConfig, respFmt *ai.ResponseFormat) *generationConfig {
	if cfg == nil && respFmt == nil {
		return nil
	}

	gc := &generationConfig{}

	if cfg != nil {
		if cfg.Temperature != nil {
			t := float64(*cfg.Temperature)
			gc.Temperature = &t
		}

		if cfg.TopP != nil {
			p := float64(*cfg.TopP)
			gc.TopP = &p
		}

		if cfg.MaxTokens > 0 {
			gc.MaxOutputTokens = &cfg.MaxTokens
		}
	}

	if respFmt != nil {
		if respFmt.OutputSchema != nil {
			gc.ResponseMimeType = "application/json"
			schemaBytes, err := json.Marshal(respFmt.OutputSchema)
			if err == nil {
				gc.ResponseSchema = schemaBytes
			}
		} else if respFmt.Type == "json_object" {
			gc.ResponseMimeType = "application/json"
		}
	}

	return gc
}

// geminiToGeneric converts a Gemini generateContentResponse to ai.ChatResponse.
func geminiToGeneric(resp generateContentResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:      fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:   resp.ModelVersion,
		Created: time.Now().Unix(),
	}

	// A response with no candidates is either an error or a blocked prompt.
	if len(resp.Candidates) == 0 {
		result.FinishReason = "error"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			result.FinishReason = "content_filter"
			result.Refusal = resp.PromptFeedback.BlockReason
		}
		return result
	}

	candidate := resp.Candidates[0]
	result.FinishReason = mapFinishReason(candidate.FinishReason)

	if candidate.Content != nil {
		var textParts []string
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				textParts = append(textParts, p.Text)
			}
		}
		result.Content = strings.Join(textParts, "\n")
	}

	if resp.UsageMetadata != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result
}

// mapFinishReason converts a Gemini finish reason to the generic vocabulary.
func mapFinishReason(geminiReason string) string {
	switch geminiReason {
	case "STOP":
		return "stop"
	case "MAX_TOKENS":
		return "length"
	case "SAFETY", "RECITATION":
		return "content_filter"
	default:
		return "stop"
	}
}
