package statiq_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SpyFileServer struct {
	mock.Mock
}

func (s *SpyFileServer) Serve(ctx context.Context, root, path string, types statiq.ContentTypeResolver) (*statiq.FileResponse, error) {
	args := s.Called(ctx, root, path, types)
	resp, _ := args.Get(0).(*statiq.FileResponse)
	return resp, args.Error(1)
}

func writeFileTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func newTestResolver(t *testing.T, cfg statiq.Config) *statiq.Resolver {
	t.Helper()
	r, err := statiq.NewResolver(cfg, filesystem.NewServer(0), nil, nil)
	require.NoError(t, err)
	return r
}

func resolveGET(t *testing.T, r *statiq.Resolver, path string) statiq.Resolution {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res := r.Resolve(req.Context(), req)
	if res.File != nil && res.File.Content != nil {
		t.Cleanup(func() { res.File.Content.Close() })
	}
	return res
}

func TestNewResolver(t *testing.T) {
	t.Run("requires a file server", func(t *testing.T) {
		_, err := statiq.NewResolver(statiq.Config{}, nil, nil, nil)
		assert.Error(t, err)
	})

	t.Run("config slices are copied", func(t *testing.T) {
		root := t.TempDir()
		writeFileTree(t, root, map[string]string{"a.txt": "a"})

		cfg := statiq.Config{
			IncludePath: []statiq.Root{statiq.Dir(root)},
		}
		r := newTestResolver(t, cfg)

		// Mutating the caller's slice must not affect in-flight resolution.
		cfg.IncludePath[0] = statiq.Dir(t.TempDir())

		res := resolveGET(t, r, "/a.txt")
		assert.Equal(t, statiq.Served, res.Kind)
	})
}

func TestResolver_IgnoredExtensions(t *testing.T) {
	root := t.TempDir()
	writeFileTree(t, root, map[string]string{
		"page.html": "<h1>hi</h1>",
		"page.tt2":  "[% hi %]",
		"page.css":  "body{}",
	})

	spy := new(SpyFileServer)
	r, err := statiq.NewResolver(statiq.Config{
		IncludePath: []statiq.Root{statiq.Dir(root)},
	}, spy, nil, nil)
	require.NoError(t, err)

	t.Run("defaults defer template extensions", func(t *testing.T) {
		for _, path := range []string{"/page.html", "/page.tt2", "/PAGE.HTML"} {
			res := resolveGET(t, r, path)
			assert.Equal(t, statiq.Deferred, res.Kind, path)
		}
		spy.AssertNotCalled(t, "Serve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("custom list replaces the defaults", func(t *testing.T) {
		r := newTestResolver(t, statiq.Config{
			IncludePath:      []statiq.Root{statiq.Dir(root)},
			IgnoreExtensions: []string{"css"},
		})

		res := resolveGET(t, r, "/page.css")
		assert.Equal(t, statiq.Deferred, res.Kind)

		res = resolveGET(t, r, "/page.html")
		assert.Equal(t, statiq.Served, res.Kind, "html is servable once the defaults are replaced")
	})

	t.Run("empty list disables the rule", func(t *testing.T) {
		r := newTestResolver(t, statiq.Config{
			IncludePath:      []statiq.Root{statiq.Dir(root)},
			IgnoreExtensions: []string{},
		})

		res := resolveGET(t, r, "/page.html")
		assert.Equal(t, statiq.Served, res.Kind)
	})
}

func TestResolver_IgnoreDirs(t *testing.T) {
	root := t.TempDir()
	writeFileTree(t, root, map[string]string{
		"api/data.json":   "{}",
		"admin/panel.css": "body{}",
		"public/app.css":  "body{}",
	})

	spy := new(SpyFileServer)
	r, err := statiq.NewResolver(statiq.Config{
		IncludePath: []statiq.Root{statiq.Dir(root)},
		IgnoreDirs:  []string{"api", "/admin/"},
	}, spy, nil, nil)
	require.NoError(t, err)

	for _, path := range []string{"/api/data.json", "/admin/panel.css"} {
		res := resolveGET(t, r, path)
		assert.Equal(t, statiq.Deferred, res.Kind, path)
	}
	spy.AssertNotCalled(t, "Serve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	res := resolveGET(t, newTestResolver(t, statiq.Config{
		IncludePath: []statiq.Root{statiq.Dir(root)},
		IgnoreDirs:  []string{"api"},
	}), "/public/app.css")
	assert.Equal(t, statiq.Served, res.Kind)
}

func TestResolver_AllowList(t *testing.T) {
	root := t.TempDir()
	writeFileTree(t, root, map[string]string{
		"always-static/present.txt": "here",
		"other/present.txt":         "there",
	})

	cfg := statiq.Config{
		IncludePath: []statiq.Root{statiq.Dir(root)},
		Dirs:        []statiq.DirSpec{statiq.ParseDirSpec("always-static")},
	}
	r := newTestResolver(t, cfg)

	t.Run("matching path with a file is served", func(t *testing.T) {
		res := resolveGET(t, r, "/always-static/present.txt")
		require.Equal(t, statiq.Served, res.Kind)

		content, err := io.ReadAll(res.File.Content)
		require.NoError(t, err)
		assert.Equal(t, "here", string(content))
	})

	t.Run("matching path with no file is a hard 404", func(t *testing.T) {
		res := resolveGET(t, r, "/always-static/404.txt")
		assert.Equal(t, statiq.NotFound, res.Kind)
	})

	t.Run("non-matching path defers even when the file exists", func(t *testing.T) {
		res := resolveGET(t, r, "/other/present.txt")
		assert.Equal(t, statiq.Deferred, res.Kind)
	})

	t.Run("pattern specifier", func(t *testing.T) {
		r := newTestResolver(t, statiq.Config{
			IncludePath: []statiq.Root{statiq.Dir(root)},
			Dirs:        []statiq.DirSpec{statiq.ParseDirSpec(`/^always-/`)},
		})

		res := resolveGET(t, r, "/always-static/present.txt")
		assert.Equal(t, statiq.Served, res.Kind)
	})

	t.Run("malformed pattern is a fault", func(t *testing.T) {
		r := newTestResolver(t, statiq.Config{
			IncludePath: []statiq.Root{statiq.Dir(root)},
			Dirs:        []statiq.DirSpec{statiq.ParseDirSpec(`/[/`)},
		})

		res := resolveGET(t, r, "/anything.txt")
		require.Equal(t, statiq.Fault, res.Kind)
		assert.ErrorIs(t, res.Err, statiq.ErrBadPattern)
	})
}

func TestResolver_RootOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFileTree(t, first, map[string]string{"app.css": "first"})
	writeFileTree(t, second, map[string]string{"app.css": "second", "only.css": "second only"})

	r := newTestResolver(t, statiq.Config{
		IncludePath: []statiq.Root{statiq.Dir(first), statiq.Dir(second)},
	})

	t.Run("earlier root shadows later", func(t *testing.T) {
		res := resolveGET(t, r, "/app.css")
		require.Equal(t, statiq.Served, res.Kind)

		content, err := io.ReadAll(res.File.Content)
		require.NoError(t, err)
		assert.Equal(t, "first", string(content))
	})

	t.Run("miss in the first root falls through", func(t *testing.T) {
		res := resolveGET(t, r, "/only.css")
		require.Equal(t, statiq.Served, res.Kind)

		content, err := io.ReadAll(res.File.Content)
		require.NoError(t, err)
		assert.Equal(t, "second only", string(content))
	})
}

func TestResolver_DynamicRoots(t *testing.T) {
	vhost := t.TempDir()
	fallback := t.TempDir()
	writeFileTree(t, vhost, map[string]string{"logo.png": "vhost"})
	writeFileTree(t, fallback, map[string]string{"logo.png": "fallback", "base.css": "base"})

	provider := statiq.RootProviderFunc(func(ctx context.Context, req *http.Request) ([]string, error) {
		if req.Host == "example.com" {
			return []string{vhost}, nil
		}
		return nil, nil
	})

	r := newTestResolver(t, statiq.Config{
		IncludePath: []statiq.Root{statiq.Dynamic(provider), statiq.Dir(fallback)},
	})

	t.Run("provider roots are searched first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/logo.png", nil)
		req.Host = "example.com"

		res := r.Resolve(req.Context(), req)
		require.Equal(t, statiq.Served, res.Kind)
		defer res.File.Content.Close()

		content, err := io.ReadAll(res.File.Content)
		require.NoError(t, err)
		assert.Equal(t, "vhost", string(content))
	})

	t.Run("empty provider result contributes nothing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/logo.png", nil)
		req.Host = "unknown.test"

		res := r.Resolve(req.Context(), req)
		require.Equal(t, statiq.Served, res.Kind)
		defer res.File.Content.Close()

		content, err := io.ReadAll(res.File.Content)
		require.NoError(t, err)
		assert.Equal(t, "fallback", string(content))
	})

	t.Run("provider failure is a fault", func(t *testing.T) {
		failing := statiq.RootProviderFunc(func(ctx context.Context, req *http.Request) ([]string, error) {
			return nil, errors.New("connection refused")
		})
		r := newTestResolver(t, statiq.Config{
			IncludePath: []statiq.Root{statiq.Dynamic(failing), statiq.Dir(fallback)},
		})

		res := resolveGET(t, r, "/base.css")
		require.Equal(t, statiq.Fault, res.Kind)
		assert.ErrorIs(t, res.Err, statiq.ErrProvider)
	})
}

func TestResolver_ServeOutcomes(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFileTree(t, first, map[string]string{"app.css": "first"})
	writeFileTree(t, second, map[string]string{"app.css": "second"})

	t.Run("non-404 status ends the search", func(t *testing.T) {
		spy := new(SpyFileServer)
		spy.On("Serve", mock.Anything, first, "app.css", mock.Anything).
			Return(&statiq.FileResponse{Status: http.StatusForbidden, Header: http.Header{}}, nil).
			Once()

		r, err := statiq.NewResolver(statiq.Config{
			IncludePath: []statiq.Root{statiq.Dir(first), statiq.Dir(second)},
		}, spy, nil, nil)
		require.NoError(t, err)

		res := resolveGET(t, r, "/app.css")
		require.Equal(t, statiq.Served, res.Kind)
		assert.Equal(t, http.StatusForbidden, res.File.Status)
		spy.AssertExpectations(t)
	})

	t.Run("capability 404 moves to the next root", func(t *testing.T) {
		spy := new(SpyFileServer)
		spy.On("Serve", mock.Anything, first, "app.css", mock.Anything).
			Return(&statiq.FileResponse{Status: http.StatusNotFound}, nil).
			Once()
		spy.On("Serve", mock.Anything, second, "app.css", mock.Anything).
			Return(&statiq.FileResponse{Status: http.StatusOK, Header: http.Header{}}, nil).
			Once()

		r, err := statiq.NewResolver(statiq.Config{
			IncludePath: []statiq.Root{statiq.Dir(first), statiq.Dir(second)},
		}, spy, nil, nil)
		require.NoError(t, err)

		res := resolveGET(t, r, "/app.css")
		require.Equal(t, statiq.Served, res.Kind)
		assert.Equal(t, http.StatusOK, res.File.Status)
		spy.AssertExpectations(t)
	})

	t.Run("serve failure is a fault", func(t *testing.T) {
		spy := new(SpyFileServer)
		spy.On("Serve", mock.Anything, first, "app.css", mock.Anything).
			Return((*statiq.FileResponse)(nil), errors.New("disk gone"))

		r, err := statiq.NewResolver(statiq.Config{
			IncludePath: []statiq.Root{statiq.Dir(first)},
		}, spy, nil, nil)
		require.NoError(t, err)

		res := resolveGET(t, r, "/app.css")
		assert.Equal(t, statiq.Fault, res.Kind)
		assert.Error(t, res.Err)
	})
}

func TestResolver_MissWithoutAllowList(t *testing.T) {
	r := newTestResolver(t, statiq.Config{
		IncludePath: []statiq.Root{statiq.Dir(t.TempDir())},
	})

	res := resolveGET(t, r, "/nope.css")
	assert.Equal(t, statiq.Deferred, res.Kind)
}

func TestResolver_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFileTree(t, root, map[string]string{"always-static/a.txt": "a"})

	r := newTestResolver(t, statiq.Config{
		IncludePath: []statiq.Root{statiq.Dir(root)},
		Dirs:        []statiq.DirSpec{statiq.ParseDirSpec("always-static")},
	})

	for range 3 {
		assert.Equal(t, statiq.Served, resolveGET(t, r, "/always-static/a.txt").Kind)
		assert.Equal(t, statiq.NotFound, resolveGET(t, r, "/always-static/404.txt").Kind)
	}
}
