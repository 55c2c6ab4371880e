package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/metcalfc/mdtoc/internal/logger"
	"github.com/metcalfc/mdtoc/internal/quality"
	"github.com/metcalfc/mdtoc/internal/reader"
	"github.com/metcalfc/mdtoc/internal/state"
	"github.com/metcalfc/mdtoc/internal/toc"
	"go.uber.org/zap"
)

// SyncMode selects what a sync task does with an out-of-date document.
type SyncMode int

const (
	// ModeWrite rewrites the file.
	ModeWrite SyncMode = iota
	// ModeDryRun computes the change without writing it.
	ModeDryRun
	// ModeCheck reports the file as stale without writing it.
	ModeCheck
)

// SyncTask keeps the TOC of each document current.
type SyncTask struct {
	TOC  *toc.Synchronizer
	Mode SyncMode
	// State, when non-nil, lets unchanged documents be skipped across runs.
	State *state.Store
	Log   *logger.Logger
}

// Run is a Task.
func (t *SyncTask) Run(ctx context.Context, path string) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}
	doc, err := reader.Load(path)
	if err != nil {
		return FileResult{}, err
	}

	fp := t.TOC.Options().Fingerprint()
	if t.State != nil && t.State.Unchanged(path, state.Hash(doc.Text), fp) {
		return FileResult{Action: ActionUnchanged, Detail: "cached"}, nil
	}

	res, err := t.TOC.Sync(doc.Text)
	if errors.Is(err, toc.ErrNoHeadings) {
		t.log().Debug("no headings", zap.String("path", path))
		if t.State != nil {
			t.State.Forget(path)
		}
		return FileResult{Action: ActionSkipped, Detail: err.Error()}, nil
	}
	if err != nil {
		return FileResult{}, err
	}
	if !res.Changed {
		t.remember(path, doc.Text, fp)
		return FileResult{Action: ActionUnchanged}, nil
	}

	action := ActionCreated
	if res.Placement == toc.PlacementReplaced {
		action = ActionUpdated
	}
	detail := res.Placement.String()

	switch t.Mode {
	case ModeCheck:
		return FileResult{Action: ActionStale, Detail: detail}, nil
	case ModeDryRun:
		return FileResult{Action: action, Detail: detail + " (dry run)"}, nil
	}

	if err := doc.Save(res.Text); err != nil {
		return FileResult{}, err
	}
	t.remember(path, res.Text, fp)
	t.log().Debug("toc written",
		zap.String("path", path),
		zap.Stringer("placement", res.Placement),
		zap.Int("headings", len(res.Headings)))
	return FileResult{Action: action, Detail: detail}, nil
}

func (t *SyncTask) remember(path, text, fp string) {
	if t.State != nil && t.Mode == ModeWrite {
		t.State.Record(path, state.Hash(text), fp)
	}
}

func (t *SyncTask) log() *logger.Logger {
	if t.Log == nil {
		return logger.Nop()
	}
	return t.Log
}

// FixTask repairs missing spaces after heading and list markers.
type FixTask struct {
	DryRun bool
	Log    *logger.Logger
}

// Run is a Task.
func (t *FixTask) Run(ctx context.Context, path string) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}
	doc, err := reader.Load(path)
	if err != nil {
		return FileResult{}, err
	}
	fixed, n := quality.Fix(doc.Text)
	if n == 0 {
		return FileResult{Action: ActionUnchanged}, nil
	}
	detail := fmt.Sprintf("%d lines fixed", n)
	if t.DryRun {
		return FileResult{Action: ActionUpdated, Detail: detail + " (dry run)"}, nil
	}
	if err := doc.Save(fixed); err != nil {
		return FileResult{}, err
	}
	if t.Log != nil {
		t.Log.Debug("format fixed", zap.String("path", path), zap.Int("lines", n))
	}
	return FileResult{Action: ActionUpdated, Detail: detail}, nil
}

// CheckTask runs quality checks and keeps every report for later summarizing.
type CheckTask struct {
	Checker *quality.Checker

	mu      sync.Mutex
	reports []quality.Report
}

// Run is a Task. Documents with issues are reported as stale.
func (t *CheckTask) Run(ctx context.Context, path string) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}
	doc, err := reader.Load(path)
	if err != nil {
		t.keep(quality.Report{Path: path, Error: err.Error()})
		return FileResult{}, err
	}
	r := t.Checker.Check(path, doc.Text)
	t.keep(r)
	if r.Clean() {
		return FileResult{Action: ActionUnchanged}, nil
	}
	return FileResult{Action: ActionStale, Detail: fmt.Sprintf("%d issues", len(r.Issues))}, nil
}

func (t *CheckTask) keep(r quality.Report) {
	t.mu.Lock()
	t.reports = append(t.reports, r)
	t.mu.Unlock()
}

// Reports returns the collected reports in completion order.
func (t *CheckTask) Reports() []quality.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]quality.Report(nil), t.reports...)
}
