// Package middleware provides the HTTP middleware stacked on API modules:
// request IDs, panic recovery, access logging, CORS, and bearer token auth.
package middleware

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain is an ordered middleware stack. The first entry is the outermost wrapper.
type Chain []Middleware

// Use appends mws to the chain.
func (c *Chain) Use(mws ...Middleware) {
	*c = append(*c, mws...)
}

// Then wraps h with every middleware in the chain.
func (c Chain) Then(h http.Handler) http.Handler {
	for i := len(c) - 1; i >= 0; i-- {
		h = c[i](h)
	}
	return h
}
