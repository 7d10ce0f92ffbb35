package statiq

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// DirSpec is a single allow-list entry. It is one of: a literal directory
// name matched as an anchored prefix, a precompiled regular expression, or a
// textual pattern compiled lazily on first use. Use LiteralDir, MatchDir, or
// PatternDir to construct one, or ParseDirSpec to interpret a configuration
// string.
type DirSpec interface {
	match(path string) (bool, error)
}

type literalDir string

func (d literalDir) match(path string) (bool, error) {
	return strings.HasPrefix(path, string(d)+"/"), nil
}

// LiteralDir returns a specifier matching paths under the named directory.
// Surrounding slashes in name are ignored.
func LiteralDir(name string) DirSpec {
	return literalDir(strings.Trim(name, "/"))
}

type regexpDir struct {
	re *regexp.Regexp
}

func (d regexpDir) match(path string) (bool, error) {
	return d.re.MatchString(path), nil
}

// MatchDir returns a specifier matching paths against a precompiled pattern.
func MatchDir(re *regexp.Regexp) DirSpec {
	return regexpDir{re: re}
}

// patternDir compiles its expression on first use. Compilation failure is a
// configuration fault surfaced on every request that consults the specifier.
type patternDir struct {
	expr string

	once sync.Once
	re   *regexp.Regexp
	err  error
}

func (d *patternDir) match(path string) (bool, error) {
	d.once.Do(func() {
		d.re, d.err = regexp.Compile(d.expr)
	})
	if d.err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrBadPattern, d.expr, d.err)
	}
	return d.re.MatchString(path), nil
}

// PatternDir returns a specifier whose regular expression is compiled lazily
// on first use.
func PatternDir(expr string) DirSpec {
	return &patternDir{expr: expr}
}

// ParseDirSpec interprets a configuration string as an allow-list specifier.
// Strings delimited by "/" on both ends are regular expression patterns,
// everything else is a literal directory name:
//
//	"assets"          matches assets/...
//	"/^images\/\d+/"  matches by pattern
func ParseDirSpec(s string) DirSpec {
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		return PatternDir(s[1 : len(s)-1])
	}
	return LiteralDir(s)
}

// matchDirs reports whether path falls inside any allow-listed directory.
// The request path's leading slash is stripped before testing. First match
// wins; ordering is significant only for efficiency.
func matchDirs(path string, specs []DirSpec) (bool, error) {
	path = strings.TrimPrefix(path, "/")
	for _, spec := range specs {
		ok, err := spec.match(path)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
