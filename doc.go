// Package aiwand is a convenience layer over OpenAI and Gemini. One import
// gives high-level helpers for summarizing, chatting, generating, grading,
// and extracting structured data, with the provider and model picked
// automatically from stored preferences and environment credentials.
//
// The simplest call needs only an API key in the environment:
//
//	summary, err := aiwand.Summarize(ctx, longText)
//
// Helpers accept options for control when the defaults are not enough:
//
//	reply, err := aiwand.Chat(ctx, "What's the capital of France?",
//		aiwand.WithModel("gemini-2.5-flash"),
//		aiwand.WithTemperature(0.2),
//	)
//
// Lower layers remain available for direct use: providers/ai holds the
// provider abstraction, core/client the request pipeline, and core/config
// the preference store and provider resolution.
package aiwand
