package toc

import (
	"regexp"
	"strings"
)

// Placement records where a TOC block went.
type Placement int

const (
	PlacementNone Placement = iota
	PlacementReplaced
	PlacementAfterSummary
	PlacementBeforeHeading
	PlacementAppended
)

func (p Placement) String() string {
	switch p {
	case PlacementReplaced:
		return "replaced"
	case PlacementAfterSummary:
		return "after-summary"
	case PlacementBeforeHeading:
		return "before-heading"
	case PlacementAppended:
		return "appended"
	default:
		return "none"
	}
}

// entryRegex matches a list item that is a single in-page link, the shape of
// every rendered TOC entry. It captures the link title and anchor.
var entryRegex = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\[(.*)\]\(#([^)\s]*)\)\s*$`)

// document is one parse of the text shared by extraction and placement.
type document struct {
	text     string
	lines    []line
	fenced   []bool
	headings []headingLine
}

func (s *Synchronizer) parse(text string) *document {
	d := &document{text: text, lines: splitLines(text)}
	d.fenced = s.fenced(text, d.lines)
	d.headings = s.scan(text, d.lines, d.fenced)
	return d
}

func (d *document) isFenced(i int) bool { return d.fenced != nil && d.fenced[i] }

// eol returns the document's line terminator.
func (d *document) eol() string {
	if strings.Contains(d.text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// existingTOC returns the index of the first line holding a TOC heading, or -1.
func (s *Synchronizer) existingTOC(d *document) int {
	for i, l := range d.lines {
		if d.isFenced(i) {
			continue
		}
		for _, re := range s.existing {
			if re.MatchString(l.text(d.text)) {
				return i
			}
		}
	}
	return -1
}

// staleList returns the index of the last TOC entry line under line i, skipping
// blank lines between entries, or -1 when no entry follows. Any other list ends it.
func (d *document) staleList(i int) int {
	last := -1
	for j := i + 1; j < len(d.lines); j++ {
		if d.isFenced(j) {
			break
		}
		content := d.lines[j].text(d.text)
		if strings.TrimSpace(content) == "" {
			continue
		}
		if !entryRegex.MatchString(content) {
			break
		}
		last = j
	}
	return last
}

// summaryEnd returns the byte offset where the first summary section ends, or -1.
func (s *Synchronizer) summaryEnd(d *document) int {
	for i, h := range d.headings {
		content := h.text(d.text)
		matched := false
		for _, label := range s.opts.SummaryHeadings {
			if strings.HasPrefix(content, label) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for _, next := range d.headings[i+1:] {
			if next.level <= h.level {
				return next.start
			}
		}
		return len(d.text)
	}
	return -1
}

// Place rewrites text so block is present, trying in order: replace an existing TOC,
// insert after the summary section, insert before the first heading, append.
// The block is expected to use "\n" line endings; it is converted to match the document.
func (s *Synchronizer) Place(text, block string) (string, Placement) {
	return s.place(s.parse(text), block)
}

func (s *Synchronizer) place(d *document, block string) (string, Placement) {
	text := d.text
	eol := d.eol()
	if eol != "\n" {
		block = strings.ReplaceAll(block, "\n", eol)
	}

	if i := s.existingTOC(d); i >= 0 {
		start := d.lines[i].start
		end := d.lines[i].contentEnd
		replacement := block
		if last := d.staleList(i); last >= 0 {
			// The consumed list's own terminator stands in for the block's trailing newline.
			end = d.lines[last].contentEnd
			replacement = strings.TrimSuffix(block, eol)
		}
		return text[:start] + replacement + text[end:], PlacementReplaced
	}

	if pos := s.summaryEnd(d); pos >= 0 {
		return text[:pos] + eol + block + eol + text[pos:], PlacementAfterSummary
	}

	if len(d.headings) > 0 {
		pos := d.headings[0].start
		return text[:pos] + block + eol + text[pos:], PlacementBeforeHeading
	}

	return text + eol + eol + block, PlacementAppended
}
