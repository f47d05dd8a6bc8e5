// Package registry holds the static table of known model identifiers per
// provider and the inference rules that map a model name to its provider.
// The table is data, not behavior: keeping it current is the maintenance
// contract, and anything the table and heuristics cannot place resolves to
// ProviderUnknown so the caller can decide.
package registry
