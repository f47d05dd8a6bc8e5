// Package client provides the normalization layer between raw provider calls
// and the high-level helpers. It applies request defaults, runs a middleware
// chain (logging only; failures are never retried here), and offers a
// type-safe structured-output wrapper over any provider.
//
// The primary entry point is [New], which accepts an [ai.Provider] and a set
// of functional options. For structured responses, use [NewStructured] or
// [FromBaseClient].
package client
