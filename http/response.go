package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/sagarc03/statiq"
)

// Fixed response bodies. The headers written alongside them are part of the
// compatibility contract: Content-Length always matches the body.
const (
	notFoundBody      = "not found"
	internalErrorBody = "internal server error"
)

// WriteNotFound writes the fixed 404 response.
func WriteNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Length", strconv.Itoa(len(notFoundBody)))
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, notFoundBody)
}

// WriteInternalError writes the fixed 500 response.
func WriteInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(internalErrorBody)))
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, internalErrorBody)
}

// writeFile translates a served FileResponse into an HTTP response. For 200
// responses with content it hands the body to http.ServeContent so range and
// conditional requests keep working; other statuses are passed through as-is.
func writeFile(w http.ResponseWriter, r *http.Request, resp *statiq.FileResponse) {
	if resp.Content != nil {
		defer func() { _ = resp.Content.Close() }()
	}

	for key, values := range resp.Header {
		// ServeContent computes its own Content-Length (range requests
		// shorten it).
		if key == "Content-Length" {
			continue
		}
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}

	if resp.Status == http.StatusOK && resp.Content != nil {
		http.ServeContent(w, r, resp.Name, resp.ModTime, resp.Content)
		return
	}

	w.WriteHeader(resp.Status)
}
