package batch

import (
	"encoding/json"
	"time"
)

// Action is what happened to one file.
type Action int

const (
	ActionUnchanged Action = iota
	ActionUpdated
	ActionCreated
	ActionSkipped
	ActionStale
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionUpdated:
		return "updated"
	case ActionCreated:
		return "created"
	case ActionSkipped:
		return "skipped"
	case ActionStale:
		return "stale"
	case ActionFailed:
		return "failed"
	default:
		return "unchanged"
	}
}

// MarshalJSON encodes the action by name.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// FileResult is the outcome of one task.
type FileResult struct {
	Path     string        `json:"path"`
	Action   Action        `json:"action"`
	Detail   string        `json:"detail,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration_ns"`
}

// Summary counts file outcomes for a run.
type Summary struct {
	Total     int           `json:"total"`
	Updated   int           `json:"updated"`
	Created   int           `json:"created"`
	Unchanged int           `json:"unchanged"`
	Skipped   int           `json:"skipped"`
	Stale     int           `json:"stale"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

func (s *Summary) add(r FileResult) {
	s.Total++
	switch r.Action {
	case ActionUpdated:
		s.Updated++
	case ActionCreated:
		s.Created++
	case ActionSkipped:
		s.Skipped++
	case ActionStale:
		s.Stale++
	case ActionFailed:
		s.Failed++
	default:
		s.Unchanged++
	}
}

// Changed reports whether any file was rewritten.
func (s Summary) Changed() int { return s.Updated + s.Created }
