// Package middleware provides reusable middlewares for the client send
// pipeline. Middlewares wrap the provider call and can observe requests and
// responses without changing them.
package middleware
