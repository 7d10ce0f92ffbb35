package statiq

import (
	"mime"
	"path/filepath"
	"strings"
)

// ContentTypeResolver maps a file path to a MIME type.
type ContentTypeResolver interface {
	ContentType(path string) string
}

// MIMEResolver resolves content types from a configured extension override
// map, falling back to the system MIME database, and finally to text/plain.
type MIMEResolver struct {
	overrides map[string]string
}

// NewMIMEResolver creates a MIMEResolver. Override keys are extensions with
// or without a leading dot; lookup is case-insensitive.
func NewMIMEResolver(overrides map[string]string) *MIMEResolver {
	m := make(map[string]string, len(overrides))
	for ext, typ := range overrides {
		m[strings.ToLower(strings.TrimPrefix(ext, "."))] = typ
	}
	return &MIMEResolver{overrides: m}
}

func (r *MIMEResolver) ContentType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	if typ, ok := r.overrides[ext]; ok {
		return typ
	}
	if ext != "" {
		if typ := mime.TypeByExtension("." + ext); typ != "" {
			return typ
		}
	}
	return "text/plain"
}
