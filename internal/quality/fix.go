package quality

import (
	"regexp"
	"strings"

	"github.com/metcalfc/mdtoc/internal/toc"
)

var (
	// headingNoSpace matches "#Title" but not "####### x" or "#".
	headingNoSpace = regexp.MustCompile(`^(#{1,6})([^#\s\x{3000}])`)
	// listNoSpace matches "-item" and "+item"; '*' is ambiguous with emphasis.
	listNoSpace = regexp.MustCompile(`^(\s*)([-+])(\p{L})`)
)

// Fix inserts the missing space after heading markers and list bullets outside
// fenced code blocks. It returns the new text and how many lines changed.
func Fix(text string) (string, int) {
	lines := strings.Split(text, "\n")
	var fences toc.FenceTracker
	fixed := 0
	for i, line := range lines {
		if fences.Inside(line) {
			continue
		}
		out := line
		if m := headingNoSpace.FindStringSubmatchIndex(out); m != nil {
			out = out[:m[3]] + " " + out[m[3]:]
		} else if m := listNoSpace.FindStringSubmatchIndex(out); m != nil {
			out = out[:m[5]] + " " + out[m[5]:]
		}
		if out != line {
			lines[i] = out
			fixed++
		}
	}
	return strings.Join(lines, "\n"), fixed
}
