// Package utils contains small internal helpers shared across packages:
// a JSON-over-HTTP POST primitive, string truncation for log output, and a
// generic pointer constructor.
package utils
