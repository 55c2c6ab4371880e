package reader

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Walker finds documents under a set of roots.
type Walker struct {
	Format       Format
	ExcludeDirs  []string
	ExcludeFiles []string
}

// Find returns matching files under roots in lexical order without duplicates.
// A root naming a file is returned as long as its extension matches, even if its
// name is excluded; exclusions apply only to what the walk discovers.
func (w Walker) Find(roots ...string) ([]string, error) {
	skipDir := toSet(w.ExcludeDirs)
	skipFile := toSet(w.ExcludeFiles)
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if w.Format.Matches(root) {
				add(filepath.Clean(root))
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if skipFile[d.Name()] || !w.Format.Matches(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
