// Package parse converts model output strings into typed Go values.
// It tolerates the usual failure modes of LLM JSON: markdown code fences,
// single quotes, trailing commas, and missing brackets are repaired before
// parsing gives up.
package parse
