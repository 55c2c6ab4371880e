package toc

import "strings"

// FenceTracker follows fenced code blocks (``` or ~~~, three or more) line by line.
// The zero value starts outside any block.
type FenceTracker struct {
	fence string
}

// Inside advances over line and reports whether it belongs to a fenced block,
// delimiters included.
func (f *FenceTracker) Inside(line string) bool {
	trimmed := strings.TrimSpace(line)
	if f.fence != "" {
		if strings.HasPrefix(trimmed, f.fence) && strings.Trim(trimmed, f.fence[:1]) == "" {
			f.fence = ""
		}
		return true
	}
	for _, c := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == c {
			n++
		}
		if n >= 3 {
			f.fence = trimmed[:n]
			return true
		}
	}
	return false
}
