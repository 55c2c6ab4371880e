package reader

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFormatMatches(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"doc.md", true},
		{"DOC.MD", true},
		{"dir/nested/notes.md", true},
		{"notes.markdown", false},
		{"notes.txt", false},
		{"md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Markdown.Matches(tt.name); got != tt.expected {
				t.Errorf("Matches(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}

	extended := Format{Name: "Markdown", Extensions: []string{".md", ".markdown"}}
	if !extended.Matches("notes.markdown") {
		t.Error("expected .markdown to match extended format")
	}
	if got := extended.String(); got != "Markdown (.md, .markdown)" {
		t.Errorf("String() = %q", got)
	}
}

func TestWalkerFind(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		"a.md",
		"README.md",
		"notes.txt",
		"docs/b.md",
		"docs/deep/c.md",
		".git/d.md",
		"node_modules/pkg/e.md",
	}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte("# x\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	w := Walker{
		Format:       Markdown,
		ExcludeDirs:  []string{".git", "node_modules"},
		ExcludeFiles: []string{"README.md"},
	}

	t.Run("directory root", func(t *testing.T) {
		got, err := w.Find(tmpDir)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		want := []string{
			filepath.Join(tmpDir, "a.md"),
			filepath.Join(tmpDir, "docs/b.md"),
			filepath.Join(tmpDir, "docs/deep/c.md"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("explicit file bypasses name exclusion", func(t *testing.T) {
		readme := filepath.Join(tmpDir, "README.md")
		got, err := w.Find(readme, filepath.Join(tmpDir, "notes.txt"))
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if !reflect.DeepEqual(got, []string{readme}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("overlapping roots are deduplicated", func(t *testing.T) {
		got, err := w.Find(filepath.Join(tmpDir, "docs"), filepath.Join(tmpDir, "docs", "b.md"))
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 files, got %v", got)
		}
	})

	t.Run("missing root", func(t *testing.T) {
		if _, err := w.Find(filepath.Join(tmpDir, "nope")); err == nil {
			t.Error("expected error")
		}
	})
}
