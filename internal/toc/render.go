package toc

import "strings"

// Entry is one rendered TOC line.
type Entry struct {
	Indent int // heading level minus one
	Title  string
	Anchor string
}

// Entries derives one entry per heading, in order.
func (s *Synchronizer) Entries(headings []Heading) []Entry {
	a := newAnchorer(s.opts.AnchorCollisions)
	entries := make([]Entry, 0, len(headings))
	for _, h := range headings {
		entries = append(entries, Entry{
			Indent: h.Level - 1,
			Title:  h.Title,
			Anchor: a.next(h.Title),
		})
	}
	return entries
}

// Render builds the TOC block: title, blank line, entries, trailing newline.
// It returns "" for no headings; callers treat that as nothing to do.
func (s *Synchronizer) Render(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}
	lines := []string{s.opts.Title, ""}
	for _, e := range s.Entries(headings) {
		lines = append(lines, strings.Repeat("  ", e.Indent)+"- ["+e.Title+"](#"+e.Anchor+")")
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
