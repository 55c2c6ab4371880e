package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/metcalfc/mdtoc/internal/quality"
	"github.com/metcalfc/mdtoc/internal/state"
	"github.com/metcalfc/mdtoc/internal/toc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newSync(t *testing.T) *toc.Synchronizer {
	t.Helper()
	s, err := toc.New(toc.DefaultOptions())
	require.NoError(t, err)
	return s
}

func TestRunnerIsolatesFailures(t *testing.T) {
	paths := []string{"c", "a", "b", "d"}
	var seen atomic.Int32
	r := &Runner{Workers: 2, OnResult: func(FileResult) { seen.Add(1) }}

	results, sum := r.Run(context.Background(), paths, func(_ context.Context, p string) (FileResult, error) {
		if p == "b" {
			return FileResult{}, errors.New("boom")
		}
		return FileResult{Action: ActionUpdated}, nil
	})

	require.Len(t, results, 4)
	assert.Equal(t, "a", results[0].Path)
	assert.Equal(t, "d", results[3].Path)
	assert.Equal(t, ActionFailed, results[1].Action)
	assert.EqualError(t, results[1].Err, "boom")
	assert.Equal(t, "boom", results[1].Detail)
	assert.Equal(t, int32(4), seen.Load())
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 3, sum.Updated)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 3, sum.Changed())
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Workers: 1}
	results, sum := r.Run(ctx, []string{"a", "b"}, func(context.Context, string) (FileResult, error) {
		t.Error("task should not run")
		return FileResult{}, nil
	})
	assert.Empty(t, results)
	assert.Zero(t, sum.Total)
}

func TestSyncTask(t *testing.T) {
	dir := t.TempDir()
	fresh := writeFile(t, dir, "fresh.md", "# A\n## B\n")
	stale := writeFile(t, dir, "stale.md", "## 目录\n- [Old](#old)\n\n# A\n")
	empty := writeFile(t, dir, "empty.md", "just prose\n")
	bad := writeFile(t, dir, "bad.md", "# A\n\xff\n")

	task := &SyncTask{TOC: newSync(t)}
	results, sum := (&Runner{Workers: 4}).Run(context.Background(),
		[]string{fresh, stale, empty, bad}, task.Run)

	byPath := map[string]FileResult{}
	for _, r := range results {
		byPath[r.Path] = r
	}
	assert.Equal(t, ActionCreated, byPath[fresh].Action)
	assert.Equal(t, "before-heading", byPath[fresh].Detail)
	assert.Equal(t, ActionUpdated, byPath[stale].Action)
	assert.Equal(t, ActionSkipped, byPath[empty].Action)
	assert.Equal(t, ActionFailed, byPath[bad].Action)
	assert.Equal(t, 1, sum.Failed)

	assert.Equal(t, "## 目录\n\n- [A](#a)\n  - [B](#b)\n\n# A\n## B\n", readFile(t, fresh))
	assert.Equal(t, "## 目录\n\n- [A](#a)\n\n# A\n", readFile(t, stale))
	assert.Equal(t, "just prose\n", readFile(t, empty))

	// A second pass finds nothing to do.
	results, sum = (&Runner{}).Run(context.Background(), []string{fresh, stale}, task.Run)
	assert.Equal(t, 2, sum.Unchanged)
	assert.Equal(t, ActionUnchanged, results[0].Action)
}

func TestSyncTaskCheckAndDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "# A\n")

	for _, mode := range []SyncMode{ModeCheck, ModeDryRun} {
		task := &SyncTask{TOC: newSync(t), Mode: mode}
		res, err := task.Run(context.Background(), path)
		require.NoError(t, err)
		if mode == ModeCheck {
			assert.Equal(t, ActionStale, res.Action)
		} else {
			assert.Equal(t, ActionCreated, res.Action)
			assert.Contains(t, res.Detail, "dry run")
		}
		assert.Equal(t, "# A\n", readFile(t, path))
	}
}

func TestSyncTaskIncremental(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "# A\n")
	store, err := state.Open(filepath.Join(dir, "state", "sync_state.json"))
	require.NoError(t, err)

	task := &SyncTask{TOC: newSync(t), State: store}
	res, err := task.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, res.Action)
	assert.Equal(t, 1, store.Len())

	res, err = task.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, res.Action)
	assert.Equal(t, "cached", res.Detail)

	// Different options invalidate the cached entry.
	opts := toc.DefaultOptions()
	opts.Title = "## Contents"
	other, err := toc.New(opts)
	require.NoError(t, err)
	task.TOC = other
	res, err = task.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, res.Action)
	assert.Equal(t, "replaced", res.Detail)
	assert.Equal(t, "## Contents\n\n- [A](#a)\n\n# A\n", readFile(t, path))

	// The custom title is found again on the next pass.
	store.Forget(path)
	res, err = task.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, res.Action)
	assert.Equal(t, "## Contents\n\n- [A](#a)\n\n# A\n", readFile(t, path))

	// Documents that lose their headings are forgotten.
	require.NoError(t, os.WriteFile(path, []byte("prose\n"), 0644))
	res, err = task.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, res.Action)
	assert.Zero(t, store.Len())
}

func TestFixTask(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "#Title\n-item\n")

	res, err := (&FixTask{DryRun: true}).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, res.Action)
	assert.Equal(t, "#Title\n-item\n", readFile(t, path))

	res, err = (&FixTask{}).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "2 lines fixed", res.Detail)
	assert.Equal(t, "# Title\n- item\n", readFile(t, path))

	res, err = (&FixTask{}).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, res.Action)
}

func TestCheckTask(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.md", "# A\n## B\n")
	short := writeFile(t, dir, "short.md", "# A\n")
	missing := filepath.Join(dir, "missing.md")

	task := &CheckTask{Checker: quality.NewChecker(quality.Rules{MinSections: 2}, newSync(t))}
	results, sum := (&Runner{}).Run(context.Background(), []string{good, short, missing}, task.Run)

	assert.Equal(t, 1, sum.Unchanged)
	assert.Equal(t, 1, sum.Stale)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, ActionUnchanged, results[0].Action)
	assert.Len(t, task.Reports(), 3)

	qs := quality.Summarize(task.Reports())
	assert.Equal(t, 3, qs.Total)
	assert.Equal(t, 1, qs.Errored)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "stale", ActionStale.String())
	data, err := ActionCreated.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"created"`, string(data))
}
