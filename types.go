package statiq

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Root is a single entry in the search path. It is either a literal directory
// on disk or a provider that computes directories at request time. Use Dir or
// Dynamic to construct one.
type Root interface {
	isRoot()
}

type dirRoot string

func (dirRoot) isRoot() {}

// Dir returns a Root that searches a literal directory.
func Dir(path string) Root {
	return dirRoot(path)
}

// RootProvider computes search roots for a single request. Implementations
// may perform blocking I/O (session or database lookups) and must respect
// context cancellation. Returning an empty list is not an error; it simply
// contributes no roots.
type RootProvider interface {
	Roots(ctx context.Context, r *http.Request) ([]string, error)
}

// RootProviderFunc adapts a plain function to the RootProvider interface.
type RootProviderFunc func(ctx context.Context, r *http.Request) ([]string, error)

func (f RootProviderFunc) Roots(ctx context.Context, r *http.Request) ([]string, error) {
	return f(ctx, r)
}

type providerRoot struct {
	provider RootProvider
}

func (providerRoot) isRoot() {}

// Dynamic returns a Root whose directories are computed per request by the
// given provider. The produced directories are searched before any roots
// queued after this entry.
func Dynamic(p RootProvider) Root {
	return providerRoot{provider: p}
}

// Docroot maps one search root directory to a virtual host. Position orders
// the roots within a host; lower positions are searched first.
type Docroot struct {
	Host     string
	Position int
	Root     string
}

// Config holds the resolution rules. It is built once at application setup
// and shared read-only by every request; NewResolver copies its slices so
// later mutation by the caller cannot leak into in-flight requests.
type Config struct {
	// IncludePath is the ordered list of search roots. Empty means the
	// application root (the current working directory).
	IncludePath []Root

	// Dirs is the optional directory allow-list. When non-empty, only paths
	// matching one of the specifiers are considered for static serving, and a
	// matching path with no file behind it yields a 404 rather than falling
	// through to the application.
	Dirs []DirSpec

	// IgnoreExtensions excludes paths by final extension, case-insensitive.
	// Nil means DefaultIgnoreExtensions; use an empty non-nil slice to
	// disable the rule entirely.
	IgnoreExtensions []string

	// IgnoreDirs excludes paths under the given top-level prefixes. Entries
	// may be written with or without surrounding slashes.
	IgnoreDirs []string

	// Debug enables per-decision debug logging.
	Debug bool
}

// DefaultIgnoreExtensions lists template extensions that must never be served
// raw, even when a file with that name exists under a search root.
var DefaultIgnoreExtensions = []string{"tmpl", "tt", "tt2", "html", "xhtml"}

// ResolutionKind enumerates the possible outcomes of resolving one request.
type ResolutionKind int

const (
	// Deferred means the request is not ours; pass it to the fallback handler.
	Deferred ResolutionKind = iota
	// Served means a root produced a response to return as-is.
	Served
	// NotFound means an allow-list was configured, the path matched, and no
	// root contained the file.
	NotFound
	// Fault means resolution hit a configuration or provider failure.
	Fault
)

func (k ResolutionKind) String() string {
	switch k {
	case Deferred:
		return "deferred"
	case Served:
		return "served"
	case NotFound:
		return "not found"
	case Fault:
		return "fault"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one request. It is created and
// discarded per request.
type Resolution struct {
	Kind ResolutionKind
	// File is set when Kind is Served. The caller owns File.Content and must
	// close it.
	File *FileResponse
	// Err is set when Kind is Fault.
	Err error
}

// FileResponse is what the file-serving capability produced for one root.
// A Status of 404 means the capability could not serve the file and the
// search should move on to the next root; any other status is final.
type FileResponse struct {
	Status  int
	Header  http.Header
	Name    string
	ModTime time.Time
	Content io.ReadSeekCloser
}

// FileServer is the file-serving capability consumed by the resolver.
// Implementations serve path (slash-separated, relative) from under root and
// must distinguish "no such file" (Status 404, nil error) from genuine
// failures (non-nil error).
type FileServer interface {
	Serve(ctx context.Context, root, path string, types ContentTypeResolver) (*FileResponse, error)
}
