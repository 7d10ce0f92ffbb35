// Package statiq resolves HTTP request paths to files on disk.
//
// Statiq is a middleware building block: it decides, per request, whether a
// static file should be served, and from where. Requests it does not claim
// fall through to the wrapped application handler.
//
// # Resolution model
//
// A request path is first classified against exclusion rules (ignored
// extensions, ignored directory prefixes, and an optional directory
// allow-list). Eligible paths are then searched across an ordered list of
// roots. A root is either a literal directory or a dynamic provider that
// computes directories at request time, for example from a per-host mapping
// stored in a database.
//
//	cfg := statiq.Config{
//	    IncludePath: []statiq.Root{statiq.Dir("./public"), statiq.Dir("./themes/default")},
//	    Dirs:        []statiq.DirSpec{statiq.LiteralDir("assets"), statiq.PatternDir(`^images/\d+`)},
//	}
//	resolver, err := statiq.NewResolver(cfg, filesystem.NewServer(0), nil, nil)
//
// The resolver returns a Resolution value; it never writes to the network and
// never panics across its boundary. The http package translates resolutions
// into responses and provides the net/http middleware.
//
// # Components
//
//   - Resolver: classification and multi-root search
//   - FileServer: pluggable file-serving capability (see the filesystem package)
//   - ContentTypeResolver: extension to MIME type mapping with overrides
//   - RootProvider: request-time root computation (see the database package)
//
// See the http package for the middleware and standalone server, and the
// config package for loading all of this from files, environment, and flags.
package statiq
