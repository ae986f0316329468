// Package web provides the HTTP router and the middleware pipeline:
// request ids, request logging, panic recovery, the role gate, CSRF
// verification and login rate limiting.
package web

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Router is a thin wrapper over http.ServeMux that applies a global
// middleware stack to every route, plus optional per-route middleware.
type Router struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Use appends global middleware, applied in the order it is added.
func (rt *Router) Use(middleware ...Middleware) {
	rt.middlewares = append(rt.middlewares, middleware...)
}

// Handle registers a handler for the given method and path pattern.
// Per-route middleware runs inside the global stack.
func (rt *Router) Handle(method, path string, handler http.Handler, middleware ...Middleware) {
	wrapped := apply(handler, middleware)
	rt.mux.Handle(method+" "+path, apply(wrapped, rt.middlewares))
}

// HandleFunc is Handle for plain handler functions.
func (rt *Router) HandleFunc(method, path string, handler http.HandlerFunc, middleware ...Middleware) {
	rt.Handle(method, path, handler, middleware...)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

// apply wraps handler in reverse order so the first middleware in the
// slice is the outermost.
func apply(handler http.Handler, middlewares []Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}
