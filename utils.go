package statiq

import (
	"strings"
	"unicode/utf8"
)

// IsValidRequestPath validates a slash-separated relative path before it is
// handed to a file-serving capability. It checks that the path:
//   - is not empty, ".", or "/"
//   - is relative (does not start with "/")
//   - does not end with "/"
//   - does not contain ".." (path traversal)
//   - does not contain "//" (empty segments)
//   - does not contain "." segments (/./ or a trailing /.)
//   - is valid UTF-8
//   - does not contain null bytes or control characters
//
// Returns true if the path is valid, false otherwise.
func IsValidRequestPath(p string) bool {
	if p == "" || p == "/" || p == "." {
		return false
	}

	if p[0] == '/' || strings.HasSuffix(p, "/") {
		return false
	}

	if strings.Contains(p, "..") || strings.Contains(p, "//") {
		return false
	}

	if strings.HasPrefix(p, "./") || strings.Contains(p, "/./") || strings.HasSuffix(p, "/.") {
		return false
	}

	if !utf8.ValidString(p) {
		return false
	}

	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	return true
}
