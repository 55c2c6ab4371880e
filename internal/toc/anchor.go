package toc

import (
	"fmt"
	"strings"
	"unicode"
)

// Anchor turns a heading title into an in-page link slug.
// Runes other than letters, numbers, '_', '-' and whitespace are dropped, runs of
// '-' and whitespace collapse to one '-', and the result is trimmed of '-'.
// A title made only of punctuation yields "".
func Anchor(title string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r == '-' || unicode.IsSpace(r):
			sep = true
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// anchorer assigns anchors according to a collision policy.
type anchorer struct {
	policy string
	seen   map[string]int
}

func newAnchorer(policy string) *anchorer {
	return &anchorer{policy: policy, seen: make(map[string]int)}
}

func (a *anchorer) next(title string) string {
	id := Anchor(title)
	if a.policy != CollisionGitHub {
		return id
	}
	for count, found := a.seen[id]; found; count, found = a.seen[id] {
		candidate := fmt.Sprintf("%s-%d", id, count+1)
		a.seen[id] = count + 1
		if _, taken := a.seen[candidate]; !taken {
			id = candidate
		}
	}
	a.seen[id] = 0
	return id
}
