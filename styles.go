package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/metcalfc/mdtoc/internal/batch"
	"github.com/metcalfc/mdtoc/internal/quality"
)

var (
	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

func actionStyle(a batch.Action) lipgloss.Style {
	switch a {
	case batch.ActionUpdated, batch.ActionCreated:
		return okStyle
	case batch.ActionStale, batch.ActionSkipped:
		return warnStyle
	case batch.ActionFailed:
		return failStyle
	default:
		return detailStyle
	}
}

// printResults lists every file that was touched, failed, or (with stale) needs an update.
func printResults(w io.Writer, results []batch.FileResult, stale bool) {
	for _, r := range results {
		switch r.Action {
		case batch.ActionUnchanged, batch.ActionSkipped:
			continue
		case batch.ActionStale:
			if !stale {
				continue
			}
		}
		line := actionStyle(r.Action).Render(fmt.Sprintf("%-9s", r.Action)) + " " + pathStyle.Render(r.Path)
		if r.Detail != "" {
			line += " " + detailStyle.Render("("+r.Detail+")")
		}
		fmt.Fprintln(w, line)
	}
}

// summaryTable renders the batch counts as a one-row table.
func summaryTable(s batch.Summary) string {
	headers := []string{"total", "updated", "created", "unchanged", "skipped", "stale", "failed"}
	counts := []int{s.Total, s.Updated, s.Created, s.Unchanged, s.Skipped, s.Stale, s.Failed}
	row := make([]string, len(counts))
	for i, n := range counts {
		row[i] = strconv.Itoa(n)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(detailStyle).
		Headers(headers...).
		Row(row...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			switch {
			case headers[c] == "failed" && s.Failed > 0:
				return cellStyle.Inherit(failStyle)
			case headers[c] == "stale" && s.Stale > 0:
				return cellStyle.Inherit(warnStyle)
			}
			return cellStyle
		})
	return t.String() + "\n" + detailStyle.Render(fmt.Sprintf("done in %s", s.Elapsed.Round(time.Millisecond)))
}

// sortReports orders quality reports by path.
func sortReports(reports []quality.Report) []quality.Report {
	sorted := append([]quality.Report(nil), reports...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	return sorted
}

func printReport(w io.Writer, r quality.Report) {
	switch {
	case r.Error != "":
		fmt.Fprintf(w, "%s %s %s\n", failStyle.Render("✗"), pathStyle.Render(r.Path), detailStyle.Render(r.Error))
	case r.Clean():
		fmt.Fprintf(w, "%s %s\n", okStyle.Render("✓"), pathStyle.Render(r.Path))
	default:
		fmt.Fprintf(w, "%s %s %s\n", warnStyle.Render("⚠"), pathStyle.Render(r.Path),
			detailStyle.Render(fmt.Sprintf("(%d issues)", len(r.Issues))))
		for _, is := range r.Issues {
			fmt.Fprintf(w, "    %s\n", is)
		}
	}
}

func qualityLine(s quality.Summary) string {
	return fmt.Sprintf("%d documents: %s, %s, %s",
		s.Total,
		okStyle.Render(fmt.Sprintf("%d clean", s.Clean)),
		warnStyle.Render(fmt.Sprintf("%d with issues", s.Warning)),
		failStyle.Render(fmt.Sprintf("%d errors", s.Errored)))
}
