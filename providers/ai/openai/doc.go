// Package openai implements the ai.Provider interface for the OpenAI API
// using the go-openai SDK. Conversion between the generic chat types and the
// SDK types lives in conversion.go; the provider itself only handles
// authentication, client configuration, and dispatch.
package openai
