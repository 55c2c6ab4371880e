package quality

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/metcalfc/mdtoc/internal/toc"
	"github.com/yuin/goldmark"
)

// Checker applies Rules to documents. It is safe for concurrent use.
type Checker struct {
	rules Rules
	toc   *toc.Synchronizer
	md    goldmark.Markdown
}

// NewChecker returns a checker that reads headings the same way the synchronizer does.
func NewChecker(rules Rules, s *toc.Synchronizer) *Checker {
	return &Checker{rules: rules, toc: s, md: goldmark.New()}
}

// Check runs every enabled heuristic against text.
func (c *Checker) Check(path, text string) Report {
	r := Report{Path: path, WordCount: len(strings.Fields(text))}
	headings := c.toc.Extract(text)
	r.Sections = len(headings)

	c.checkStructure(&r, text, headings)
	c.checkTOC(&r, text)
	c.checkCode(&r, text)
	c.checkFormat(&r, text)

	if c.rules.MinWordCount > 0 && r.WordCount < c.rules.MinWordCount {
		r.add(CategoryContent, 0, "word count too low: %d < %d", r.WordCount, c.rules.MinWordCount)
	}
	if c.rules.CheckLinks {
		c.checkLinks(&r, text)
	}
	return r
}

func (c *Checker) checkStructure(r *Report, text string, headings []toc.Heading) {
	for _, section := range c.rules.RequiredSections {
		found := false
		for _, h := range headings {
			if strings.Contains(h.Title, section) {
				found = true
				break
			}
		}
		if !found {
			r.add(CategoryStructure, 0, "missing required section: %s", section)
		}
	}
	if c.rules.MinSections > 0 && len(headings) < c.rules.MinSections {
		r.add(CategoryStructure, 0, "too few sections: %d < %d", len(headings), c.rules.MinSections)
	}
	if c.rules.RequireAbstract && !c.toc.HasSummary(text) {
		r.add(CategoryStructure, 0, "missing summary section")
	}
}

func (c *Checker) checkTOC(r *Report, text string) {
	if !c.rules.RequireTOC {
		return
	}
	v, err := c.toc.Validate(text)
	if errors.Is(err, toc.ErrNoHeadings) {
		return
	}
	if !v.HasTOC {
		r.add(CategoryTOC, 0, "missing table of contents")
		return
	}
	for _, title := range v.Missing {
		r.add(CategoryTOC, 0, "heading not in table of contents: %s", title)
	}
	for _, title := range v.Extra {
		r.add(CategoryTOC, 0, "table of contents lists unknown heading: %s", title)
	}
	if v.Stale && len(v.Missing) == 0 && len(v.Extra) == 0 {
		r.add(CategoryTOC, 0, "table of contents is out of date")
	}
}

func (c *Checker) checkFormat(r *Report, text string) {
	var fences toc.FenceTracker
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		n := i + 1
		if c.rules.MaxLineLength > 0 {
			if l := utf8.RuneCountInString(line); l > c.rules.MaxLineLength {
				r.add(CategoryFormat, n, "line too long: %d > %d", l, c.rules.MaxLineLength)
			}
		}
		if fences.Inside(line) {
			continue
		}
		if headingNoSpace.MatchString(line) {
			r.add(CategoryFormat, n, "heading needs a space after '#'")
		} else if listNoSpace.MatchString(line) {
			r.add(CategoryFormat, n, "list item needs a space after the marker")
		}
	}
}
