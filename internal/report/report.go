// Package report renders the outcome of a batch run for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/metcalfc/mdtoc/internal/batch"
	"github.com/metcalfc/mdtoc/internal/quality"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Report is everything a run produced.
type Report struct {
	Command     string             `json:"command"`
	GeneratedAt time.Time          `json:"generated_at"`
	Summary     batch.Summary      `json:"summary"`
	Files       []batch.FileResult `json:"files"`
	Quality     *quality.Summary   `json:"quality,omitempty"`
	Checks      []quality.Report   `json:"checks,omitempty"`
}

// FormatFor picks a format from a file name: .json gives JSON, anything else Markdown.
func FormatFor(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatMarkdown
}

// Write renders r to w in the given format.
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMarkdown, "":
		_, err := io.WriteString(w, Markdown(r))
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Markdown renders r as a Markdown document.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# mdtoc %s report\n\n", r.Command)
	fmt.Fprintf(&b, "Generated %s in %s.\n\n", r.GeneratedAt.Format(time.RFC3339), r.Summary.Elapsed.Round(time.Millisecond))

	s := r.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| total | updated | created | unchanged | skipped | stale | failed |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d | %d |\n\n",
		s.Total, s.Updated, s.Created, s.Unchanged, s.Skipped, s.Stale, s.Failed)

	if len(r.Files) > 0 {
		b.WriteString("## Files\n\n")
		b.WriteString("| file | result | detail |\n")
		b.WriteString("|---|---|---|\n")
		for _, f := range r.Files {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(f.Path), f.Action, cell(f.Detail))
		}
		b.WriteString("\n")
	}

	if r.Quality != nil {
		q := r.Quality
		b.WriteString("## Quality\n\n")
		fmt.Fprintf(&b, "- clean: %d\n- with issues: %d\n- errors: %d\n\n", q.Clean, q.Warning, q.Errored)
		if len(q.CommonIssues) > 0 {
			b.WriteString("### Common issues\n\n")
			for _, ic := range q.CommonIssues {
				fmt.Fprintf(&b, "- %s (%d)\n", ic.Message, ic.Count)
			}
			b.WriteString("\n")
		}
	}

	for _, c := range r.Checks {
		if c.Clean() {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", c.Path)
		if c.Error != "" {
			fmt.Fprintf(&b, "- error: %s\n", c.Error)
		}
		for _, is := range c.Issues {
			fmt.Fprintf(&b, "- %s\n", is)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cell escapes text for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
