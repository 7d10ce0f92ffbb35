// Package filesystem implements the file-serving capability on top of the
// local filesystem. It produces response triples for regular files under a
// root directory, with content types supplied by the caller's resolver and
// an optional Cache-Control hint.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sagarc03/statiq"
)

// Server serves files from literal root directories. The zero value is
// usable; Expires adds a Cache-Control max-age hint to every served file.
type Server struct {
	expires int
}

// NewServer creates a Server. expires is the Cache-Control max-age in
// seconds; zero disables the header.
func NewServer(expires int) *Server {
	return &Server{expires: expires}
}

// Serve opens root/path and builds a response for it. A missing file, a
// directory, a permission failure, or a malformed path all yield a 404-status
// response with a nil error; anything else is a genuine failure. The caller
// owns the returned Content and must close it.
func (s *Server) Serve(ctx context.Context, root, path string, types statiq.ContentTypeResolver) (*statiq.FileResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !statiq.IsValidRequestPath(path) {
		return notFound(), nil
	}

	full := filepath.Join(root, filepath.FromSlash(path))

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return notFound(), nil
		}
		return nil, fmt.Errorf("open %s: %w", full, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", full, err)
	}

	if !info.Mode().IsRegular() {
		_ = f.Close()
		return notFound(), nil
	}

	if types == nil {
		types = statiq.NewMIMEResolver(nil)
	}

	header := http.Header{}
	header.Set("Content-Type", types.ContentType(full))
	header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	if s.expires > 0 {
		header.Set("Cache-Control", "max-age="+strconv.Itoa(s.expires))
	}

	return &statiq.FileResponse{
		Status:  http.StatusOK,
		Header:  header,
		Name:    info.Name(),
		ModTime: info.ModTime(),
		Content: f,
	}, nil
}

func notFound() *statiq.FileResponse {
	return &statiq.FileResponse{
		Status: http.StatusNotFound,
		Header: http.Header{},
	}
}
