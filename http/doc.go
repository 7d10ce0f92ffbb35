// Package http provides the net/http surface for statiq.
//
// # Middleware
//
// Static wraps an application handler. Requests that resolve to a file are
// served; requests the resolver defers go to the wrapped handler; resolution
// faults become a fixed 500 and never escape the middleware:
//
//	resolver, _ := statiq.NewResolver(cfg, filesystem.NewServer(0), nil, nil)
//	handler := statiqhttp.Static(resolver, nil)(app)
//
// # Standalone server
//
// Handler assembles a chi router for running statiq as a plain file server:
// optional CORS, optional request logging with generated request ids, a
// health endpoint, and the static middleware in front of a configurable
// fallback (a fixed 404 by default):
//
//	h := statiqhttp.NewHandler(&statiqhttp.HandlerConfig{Logging: true}, resolver)
//	http.ListenAndServe(":5709", h.Router())
//
// # Fixed responses
//
// The 404 and 500 bodies are fixed literals; WriteNotFound and
// WriteInternalError emit them with exact Content-Type and Content-Length
// headers for compatibility with existing deployments.
package http
