package toc

import "errors"

// ErrNoHeadings signals a document with nothing to list. It is a skip, not a failure.
var ErrNoHeadings = errors.New("no headings found")

// Result is the outcome of synchronizing one document.
type Result struct {
	Text      string
	Placement Placement
	Headings  []Heading
	Changed   bool
}

// Sync renders a fresh TOC for text and places it. When text has no qualifying
// headings it returns ErrNoHeadings along with the text unchanged.
func (s *Synchronizer) Sync(text string) (Result, error) {
	d := s.parse(text)
	headings := d.extract()
	if len(headings) == 0 {
		return Result{Text: text}, ErrNoHeadings
	}

	updated, placement := s.place(d, s.Render(headings))
	return Result{
		Text:      updated,
		Placement: placement,
		Headings:  headings,
		Changed:   updated != text,
	}, nil
}

func (d *document) extract() []Heading {
	var headings []Heading
	for _, h := range d.headings {
		if h.reserved {
			continue
		}
		headings = append(headings, Heading{
			Level:  h.level,
			Title:  h.title,
			Offset: h.start,
			Line:   h.num,
		})
	}
	return headings
}

// Anchors returns every anchor the document's headings produce. Listed headings
// are numbered exactly as Entries numbers them; reserved TOC headings add their
// plain anchor without taking part in collision counting.
func (s *Synchronizer) Anchors(text string) map[string]bool {
	d := s.parse(text)
	out := make(map[string]bool, len(d.headings))
	for _, e := range s.Entries(d.extract()) {
		out[e.Anchor] = true
	}
	for _, h := range d.headings {
		if h.reserved {
			out[Anchor(h.title)] = true
		}
	}
	return out
}

// HasSummary reports whether text contains a summary section heading.
func (s *Synchronizer) HasSummary(text string) bool {
	return s.summaryEnd(s.parse(text)) >= 0
}
