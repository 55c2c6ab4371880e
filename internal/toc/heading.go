package toc

import (
	"regexp"
	"strings"
)

// headingRegex matches markdown headers (# to ######). U+3000 counts as a
// separator since CJK documents often use it after the markers.
var headingRegex = regexp.MustCompile(`^(#{1,6})[\s\x{3000}]+(.+)$`)

// Heading is a Markdown heading in document order.
type Heading struct {
	Level  int
	Title  string
	Offset int // byte offset of the heading line
	Line   int // 1-based
}

// line is a span of text. end points at the '\n' (or len(text)); contentEnd excludes a trailing '\r'.
type line struct {
	start, end, contentEnd int
	num                    int
}

func (l line) text(s string) string { return s[l.start:l.contentEnd] }

func splitLines(text string) []line {
	var lines []line
	start, num := 0, 1
	for start <= len(text) {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}
		ce := end
		if ce > start && text[ce-1] == '\r' {
			ce--
		}
		lines = append(lines, line{start: start, end: end, contentEnd: ce, num: num})
		if end == len(text) {
			break
		}
		start, num = end+1, num+1
	}
	return lines
}

// headingLine is a line with heading syntax, reserved or not.
type headingLine struct {
	line
	level    int
	title    string
	reserved bool
}

// fenced marks lines inside fenced code blocks, fence delimiters included.
// It returns nil when SkipCodeFences is off.
func (s *Synchronizer) fenced(text string, lines []line) []bool {
	if !s.opts.SkipCodeFences {
		return nil
	}
	mask := make([]bool, len(lines))
	var fences FenceTracker
	for i, l := range lines {
		mask[i] = fences.Inside(l.text(text))
	}
	return mask
}

// scan finds every heading-syntax line in a single pass.
func (s *Synchronizer) scan(text string, lines []line, fenced []bool) []headingLine {
	var out []headingLine
	for i, l := range lines {
		if fenced != nil && fenced[i] {
			continue
		}
		m := headingRegex.FindStringSubmatch(strings.TrimSpace(l.text(text)))
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		out = append(out, headingLine{
			line:     l,
			level:    len(m[1]),
			title:    title,
			reserved: s.reserved[title],
		})
	}
	return out
}

// Extract returns the document's headings in source order, excluding reserved TOC labels.
func (s *Synchronizer) Extract(text string) []Heading {
	return s.parse(text).extract()
}
