package reader

import (
	"path/filepath"
	"strings"
)

// Format names a family of document files by extension.
type Format struct {
	Name       string
	Extensions []string
}

// Markdown is the default document format.
var Markdown = Format{Name: "Markdown", Extensions: []string{".md"}}

// Matches reports whether filename carries one of the format's extensions.
func (f Format) Matches(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range f.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// String returns the format name with its extensions.
func (f Format) String() string {
	return f.Name + " (" + strings.Join(f.Extensions, ", ") + ")"
}
