package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sagarc03/statiq"
)

// Static creates middleware that serves files resolved by resolver and
// passes everything else to the next handler. Any fault during resolution,
// including a panic, is converted to the fixed 500 response at this boundary;
// nothing propagates to the server. Pass nil for logger to use slog.Default().
func Static(resolver *statiq.Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic during static resolution", "panic", rec, "path", r.URL.Path)
					WriteInternalError(w)
				}
			}()

			res := resolver.Resolve(r.Context(), r)

			switch res.Kind {
			case statiq.Served:
				writeFile(w, r, res.File)
			case statiq.NotFound:
				logger.Debug("404: file not found", "path", r.URL.Path)
				WriteNotFound(w)
			case statiq.Fault:
				logger.Error("static resolution failed", "err", res.Err, "path", r.URL.Path)
				WriteInternalError(w)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequestLogger creates middleware that logs one line per request with a
// generated request id. Pass nil to use slog.Default().
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"id", uuid.NewString(),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"bytes", ww.bytes,
				"duration", time.Since(start),
			)
		})
	}
}

// statusWriter records the status code and body size written by downstream
// handlers.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}
