// Package ai defines the provider boundary: the Provider interface and the
// generic request/response types every provider converts to and from. Each
// provider package owns exactly one conversion in each direction, so response
// handling is an explicit translation rather than attribute sniffing.
package ai
