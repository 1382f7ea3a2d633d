// Package middleware holds the handler wrappers shared by every route:
// CORS, request logging and the chaining helper that stacks them.
package middleware

import "net/http"

// Middleware wraps an http.Handler with pre/post behavior.
type Middleware func(h http.Handler) http.Handler

// Chain stacks the middlewares around h. They run in the order given,
// h runs last.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}
