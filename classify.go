package statiq

import "strings"

// eligible applies the exclusion rules to a request path. A false result
// means the request belongs to the application, not to static serving. The
// error case is a configuration fault (an allow-list pattern that does not
// compile).
func (r *Resolver) eligible(path string) (bool, error) {
	lower := strings.ToLower(path)
	for _, ext := range r.cfg.IgnoreExtensions {
		if strings.HasSuffix(lower, "."+strings.ToLower(ext)) {
			r.debug("ignoring extension", "ext", ext, "path", path)
			return false, nil
		}
	}

	for _, dir := range r.cfg.IgnoreDirs {
		dir = strings.Trim(dir, "/")
		if dir == "" {
			continue
		}
		if strings.HasPrefix(path, "/"+dir+"/") {
			r.debug("ignoring directory", "dir", dir, "path", path)
			return false, nil
		}
	}

	if len(r.cfg.Dirs) > 0 {
		ok, err := matchDirs(path, r.cfg.Dirs)
		if err != nil {
			return false, err
		}
		if !ok {
			r.debug("path outside allowed directories", "path", path)
			return false, nil
		}
	}

	return true, nil
}
