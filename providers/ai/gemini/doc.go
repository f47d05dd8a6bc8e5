// Package gemini implements the ai.Provider interface for Google's Gemini
// API. It speaks the native generateContent REST protocol rather than the
// OpenAI-compatibility endpoint, which does not carry response schemas for
// structured output.
package gemini
