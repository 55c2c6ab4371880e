package quality

import "fmt"

// Category groups issues in reports.
type Category string

const (
	CategoryStructure Category = "structure"
	CategoryCode      Category = "code"
	CategoryFormat    Category = "format"
	CategoryContent   Category = "content"
	CategoryLinks     Category = "links"
	CategoryTOC       Category = "toc"
)

// Issue is one finding. Line is 1-based, or 0 when the issue concerns the whole document.
type Issue struct {
	Category Category `json:"category"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", i.Category, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Category, i.Message)
}

// Report collects the findings for one document.
type Report struct {
	Path       string  `json:"path"`
	WordCount  int     `json:"word_count"`
	Sections   int     `json:"sections"`
	CodeBlocks int     `json:"code_blocks"`
	Issues     []Issue `json:"issues,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Clean reports whether the document passed every check.
func (r Report) Clean() bool { return r.Error == "" && len(r.Issues) == 0 }

func (r *Report) add(c Category, line int, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Category: c, Line: line, Message: fmt.Sprintf(format, args...)})
}
