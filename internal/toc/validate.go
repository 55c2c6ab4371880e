package toc

// Validation compares a document's TOC against its headings.
type Validation struct {
	HasTOC   bool
	Headings int
	Entries  int
	Missing  []string // heading titles absent from the TOC
	Extra    []string // TOC titles with no matching heading
	Stale    bool     // Sync would rewrite the document
}

// Valid reports whether the TOC exists, lists every heading and nothing else, and is current.
func (v Validation) Valid() bool {
	return v.HasTOC && len(v.Missing) == 0 && len(v.Extra) == 0 && !v.Stale
}

// Validate inspects text without modifying it. Documents without headings return ErrNoHeadings.
func (s *Synchronizer) Validate(text string) (Validation, error) {
	d := s.parse(text)
	headings := d.extract()
	if len(headings) == 0 {
		return Validation{}, ErrNoHeadings
	}
	v := Validation{Headings: len(headings)}

	var listed []string
	if i := s.existingTOC(d); i >= 0 {
		v.HasTOC = true
		if last := d.staleList(i); last >= 0 {
			for _, l := range d.lines[i+1 : last+1] {
				if m := entryRegex.FindStringSubmatch(l.text(text)); m != nil {
					listed = append(listed, m[1])
				}
			}
		}
	}
	v.Entries = len(listed)

	inTOC := make(map[string]bool, len(listed))
	for _, t := range listed {
		inTOC[t] = true
	}
	inDoc := make(map[string]bool, len(headings))
	for _, h := range headings {
		inDoc[h.Title] = true
		if !inTOC[h.Title] {
			v.Missing = append(v.Missing, h.Title)
		}
	}
	for _, t := range listed {
		if !inDoc[t] {
			v.Extra = append(v.Extra, t)
		}
	}

	updated, _ := s.place(d, s.Render(headings))
	v.Stale = updated != text
	return v, nil
}
