package quality

import "sort"

// IssueCount is how many documents share one document-level issue.
type IssueCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Summary aggregates reports across a batch.
type Summary struct {
	Total        int          `json:"total"`
	Clean        int          `json:"clean"`
	Warning      int          `json:"warning"`
	Errored      int          `json:"errored"`
	CommonIssues []IssueCount `json:"common_issues,omitempty"`
}

const maxCommonIssues = 10

// Summarize counts clean, warning and errored documents and the most common
// document-level issues.
func Summarize(reports []Report) Summary {
	s := Summary{Total: len(reports)}
	counts := make(map[string]int)
	for _, r := range reports {
		switch {
		case r.Error != "":
			s.Errored++
		case len(r.Issues) > 0:
			s.Warning++
		default:
			s.Clean++
		}
		for _, is := range r.Issues {
			if is.Line == 0 {
				counts[is.String()]++
			}
		}
	}

	for msg, n := range counts {
		s.CommonIssues = append(s.CommonIssues, IssueCount{Message: msg, Count: n})
	}
	sort.Slice(s.CommonIssues, func(i, j int) bool {
		a, b := s.CommonIssues[i], s.CommonIssues[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Message < b.Message
	})
	if len(s.CommonIssues) > maxCommonIssues {
		s.CommonIssues = s.CommonIssues[:maxCommonIssues]
	}
	return s
}
