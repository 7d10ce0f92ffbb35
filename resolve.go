package statiq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Resolver resolves request paths against the configured search roots.
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	cfg   Config
	files FileServer
	types ContentTypeResolver
	log   *slog.Logger
}

// NewResolver creates a Resolver. The files capability is required; types
// defaults to a MIMEResolver with no overrides and log to slog.Default().
// Config slices are copied so the caller's slices stay the caller's.
func NewResolver(cfg Config, files FileServer, types ContentTypeResolver, log *slog.Logger) (*Resolver, error) {
	if files == nil {
		return nil, errors.New("new resolver: file server is required")
	}
	if types == nil {
		types = NewMIMEResolver(nil)
	}
	if log == nil {
		log = slog.Default()
	}

	cfg.IncludePath = slices.Clone(cfg.IncludePath)
	cfg.Dirs = slices.Clone(cfg.Dirs)
	cfg.IgnoreDirs = slices.Clone(cfg.IgnoreDirs)
	if cfg.IgnoreExtensions == nil {
		cfg.IgnoreExtensions = DefaultIgnoreExtensions
	}
	cfg.IgnoreExtensions = slices.Clone(cfg.IgnoreExtensions)
	if len(cfg.IncludePath) == 0 {
		cfg.IncludePath = []Root{Dir(".")}
	}

	return &Resolver{cfg: cfg, files: files, types: types, log: log}, nil
}

// Resolve decides how the request should be handled. It never writes to the
// network; callers translate the result into a response. Resolution is a pure
// function of the configuration, the request, and filesystem state at call
// time, so repeated identical requests yield identical results.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) Resolution {
	path := req.URL.Path

	ok, err := r.eligible(path)
	if err != nil {
		return Resolution{Kind: Fault, Err: err}
	}
	if !ok {
		return Resolution{Kind: Deferred}
	}

	return r.search(ctx, req, path)
}

// search walks the root queue in order. Dynamic providers expand in place:
// their directories are searched before any roots queued after the provider.
func (r *Resolver) search(ctx context.Context, req *http.Request, path string) Resolution {
	rel := strings.TrimPrefix(path, "/")
	queue := slices.Clone(r.cfg.IncludePath)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		switch root := next.(type) {
		case providerRoot:
			dirs, err := root.provider.Roots(ctx, req)
			if err != nil {
				return Resolution{Kind: Fault, Err: fmt.Errorf("%w: %v", ErrProvider, err)}
			}
			expanded := make([]Root, 0, len(dirs)+len(queue))
			for _, d := range dirs {
				expanded = append(expanded, Dir(d))
			}
			queue = append(expanded, queue...)

		case dirRoot:
			full := filepath.Join(string(root), filepath.FromSlash(rel))
			info, err := os.Stat(full)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			resp, err := r.files.Serve(ctx, string(root), rel, r.types)
			if err != nil {
				return Resolution{Kind: Fault, Err: fmt.Errorf("serve %s: %w", full, err)}
			}
			if resp.Status == http.StatusNotFound {
				// The capability could not serve it after all; try the
				// next root.
				continue
			}
			r.debug("serving file", "file", full, "status", resp.Status)
			return Resolution{Kind: Served, File: resp}
		}
	}

	if len(r.cfg.Dirs) == 0 {
		// No allow-list configured; a miss is dynamic content.
		return Resolution{Kind: Deferred}
	}
	return Resolution{Kind: NotFound}
}

func (r *Resolver) debug(msg string, args ...any) {
	if r.cfg.Debug {
		r.log.Debug(msg, args...)
	}
}
