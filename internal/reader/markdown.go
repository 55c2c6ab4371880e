// Package reader loads and stores Markdown documents and finds them on disk.
package reader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DecodeError reports a document that is not valid UTF-8.
type DecodeError struct {
	Path   string
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 at byte %d", e.Path, e.Offset)
}

// Document is a file read into memory in full.
type Document struct {
	Path string
	Text string
	Mode fs.FileMode
}

// Load reads filename whole and checks that it decodes as UTF-8.
func Load(filename string) (*Document, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, &DecodeError{Path: filename, Offset: invalidOffset(data)}
	}
	return &Document{Path: filename, Text: string(data), Mode: info.Mode().Perm()}, nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// Save replaces the file with text. It writes a sibling temp file and renames it
// over the original so readers never see a partial document.
func (d *Document) Save(text string) error {
	dir := filepath.Dir(d.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", d.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", d.Path, err)
	}
	if err := os.Chmod(tmpName, d.Mode); err != nil {
		return fmt.Errorf("chmod %s: %w", d.Path, err)
	}
	if err := os.Rename(tmpName, d.Path); err != nil {
		return fmt.Errorf("replace %s: %w", d.Path, err)
	}
	d.Text = text
	return nil
}
