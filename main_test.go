package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metcalfc/mdtoc/internal/batch"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestAnchorCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"mixed script", []string{"anchor", "API 设计 (v2)!!!"}, "api-设计-v2\n"},
		{"joined words", []string{"anchor", "Getting", "Started"}, "getting-started\n"},
		{"punctuation only", []string{"anchor", "!!!"}, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("anchor error = %v", err)
			}
			if out != tt.expected {
				t.Errorf("anchor output = %q, want %q", out, tt.expected)
			}
		})
	}
}

func TestAnchorFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	writeDoc(t, doc, "# Intro\n## Setup\n## Setup\n")
	cfg := filepath.Join(dir, "mdtoc.yaml")
	writeDoc(t, cfg, "toc:\n  anchor_collisions: github\n")

	out, err := execute(t, "--config", cfg, "anchor", "--file", doc)
	if err != nil {
		t.Fatalf("anchor --file error = %v", err)
	}
	want := doc + ":1\t#intro\tIntro\n" + doc + ":2\t#setup\tSetup\n" + doc + ":3\t#setup-1\tSetup\n"
	if out != want {
		t.Errorf("anchor --file output = %q, want %q", out, want)
	}
}

func TestSyncCommand(t *testing.T) {
	dir := t.TempDir()
	guide := filepath.Join(dir, "docs", "guide.md")
	readme := filepath.Join(dir, "README.md")
	vendored := filepath.Join(dir, "node_modules", "pkg", "doc.md")
	writeDoc(t, guide, "# Guide\n## Install\n")
	writeDoc(t, readme, "# Readme\n")
	writeDoc(t, vendored, "# Vendored\n")

	out, err := execute(t, "sync", "--no-progress", dir)
	if err != nil {
		t.Fatalf("sync error = %v", err)
	}
	if !strings.Contains(out, "created") || !strings.Contains(out, guide) {
		t.Errorf("sync output missing created line:\n%s", out)
	}

	want := "## 目录\n\n- [Guide](#guide)\n  - [Install](#install)\n\n# Guide\n## Install\n"
	if got := readDoc(t, guide); got != want {
		t.Errorf("guide.md = %q, want %q", got, want)
	}
	if got := readDoc(t, readme); got != "# Readme\n" {
		t.Errorf("README.md was modified: %q", got)
	}
	if got := readDoc(t, vendored); got != "# Vendored\n" {
		t.Errorf("node_modules doc was modified: %q", got)
	}

	if _, err := execute(t, "sync", "--check", dir); err != nil {
		t.Errorf("sync --check on fresh docs error = %v", err)
	}

	writeDoc(t, guide, want+"## Usage\n")
	out, err = execute(t, "sync", "--check", dir)
	if !errors.Is(err, errFindings) {
		t.Errorf("sync --check on stale doc error = %v, want errFindings", err)
	}
	if !strings.Contains(out, "stale") {
		t.Errorf("sync --check output missing stale line:\n%s", out)
	}
	if got := readDoc(t, guide); got != want+"## Usage\n" {
		t.Errorf("sync --check wrote the document: %q", got)
	}
}

func TestSyncReport(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, filepath.Join(dir, "a.md"), "# A\n")
	reportFile := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "sync", "--dry-run", "--report", "markdown", "--report-file", reportFile, dir)
	if err != nil {
		t.Fatalf("sync error = %v", err)
	}
	if !strings.HasPrefix(out, "# mdtoc sync report") {
		t.Errorf("stdout should be the markdown report, got:\n%s", out)
	}
	if got := readDoc(t, filepath.Join(dir, "a.md")); got != "# A\n" {
		t.Errorf("dry run wrote the document: %q", got)
	}
	if got := readDoc(t, reportFile); !strings.Contains(got, `"command": "sync"`) {
		t.Errorf("report file is not JSON:\n%s", got)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mdtoc.yaml")
	writeDoc(t, cfg, `quality:
  min_sections: 0
  min_code_examples: 0
  min_word_count: 0
  max_line_length: 0
  require_toc: true
  require_abstract: false
  require_code_language: false
  check_links: true
`)
	docs := filepath.Join(dir, "docs")
	doc := filepath.Join(docs, "doc.md")
	writeDoc(t, doc, "# A\n## B\nSee [b](#b) and [c](#c).\n")

	out, err := execute(t, "--config", cfg, "check", docs)
	if !errors.Is(err, errFindings) {
		t.Fatalf("check error = %v, want errFindings", err)
	}
	for _, want := range []string{"toc: missing table of contents", "links: broken in-page link: #c", "1 with issues"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "--config", cfg, "sync", docs); err != nil {
		t.Fatalf("sync error = %v", err)
	}
	writeDoc(t, doc, strings.Replace(readDoc(t, doc), " and [c](#c)", "", 1))
	if out, err := execute(t, "--config", cfg, "check", docs); err != nil {
		t.Errorf("check after sync error = %v\n%s", err, out)
	}
}

func TestFixCommand(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	writeDoc(t, doc, "#Title\n-item\n")

	if _, err := execute(t, "fix", "--dry-run", doc); err != nil {
		t.Fatalf("fix --dry-run error = %v", err)
	}
	if got := readDoc(t, doc); got != "#Title\n-item\n" {
		t.Errorf("fix --dry-run wrote the document: %q", got)
	}

	out, err := execute(t, "fix", doc)
	if err != nil {
		t.Fatalf("fix error = %v", err)
	}
	if !strings.Contains(out, "2 lines fixed") {
		t.Errorf("fix output missing detail:\n%s", out)
	}
	if got := readDoc(t, doc); got != "# Title\n- item\n" {
		t.Errorf("fix result = %q", got)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdtoc.yaml")
	if _, err := execute(t, "config", "init", path); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := execute(t, "config", "init", path); err == nil {
		t.Error("config init overwrote an existing file")
	}

	out, err := execute(t, "--config", path, "--workers", "3", "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"title: '## 目录'", "workers: 3", "anchor_collisions: none"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if out != "mdtoc dev (commit: none, built: unknown)\n" {
		t.Errorf("version output = %q", out)
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := execute(t, "--log-level", "loud", "anchor", "x"); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}

func TestModelUpdate(t *testing.T) {
	m := newModel("Syncing", 2)
	if m.percent() != 0 {
		t.Errorf("percent() = %v, want 0", m.percent())
	}

	next, _ := m.Update(resultMsg{Path: "docs/a.md", Action: batch.ActionUpdated})
	m = next.(model)
	next, _ = m.Update(resultMsg{Path: "docs/b.md", Action: batch.ActionFailed})
	m = next.(model)

	if m.done != 2 || m.failed != 1 {
		t.Errorf("done, failed = %d, %d, want 2, 1", m.done, m.failed)
	}
	if m.percent() != 1 {
		t.Errorf("percent() = %v, want 1", m.percent())
	}
	view := m.View()
	if !strings.Contains(view, "Syncing") || !strings.Contains(view, "2/2") || !strings.Contains(view, "b.md") {
		t.Errorf("View() = %q", view)
	}

	next, cmd := m.Update(doneMsg{})
	m = next.(model)
	if cmd == nil {
		t.Error("doneMsg should quit")
	}
	if m.View() != "" {
		t.Errorf("View() after done = %q, want empty", m.View())
	}
}

func TestSummaryTable(t *testing.T) {
	out := summaryTable(batch.Summary{Total: 3, Updated: 1, Unchanged: 1, Failed: 1})
	for _, want := range []string{"total", "unchanged", "failed", "done in"} {
		if !strings.Contains(out, want) {
			t.Errorf("summaryTable() missing %q:\n%s", want, out)
		}
	}
}

func TestPrintResultsHidesQuietActions(t *testing.T) {
	results := []batch.FileResult{
		{Path: "same.md", Action: batch.ActionUnchanged},
		{Path: "none.md", Action: batch.ActionSkipped},
		{Path: "old.md", Action: batch.ActionStale},
		{Path: "new.md", Action: batch.ActionCreated, Detail: "before-heading"},
	}
	var buf bytes.Buffer
	printResults(&buf, results, false)
	out := buf.String()
	if strings.Contains(out, "same.md") || strings.Contains(out, "none.md") || strings.Contains(out, "old.md") {
		t.Errorf("printResults() showed quiet results:\n%s", out)
	}
	if !strings.Contains(out, "new.md") || !strings.Contains(out, "(before-heading)") {
		t.Errorf("printResults() missing created file:\n%s", out)
	}
}

func BenchmarkSummaryTable(b *testing.B) {
	s := batch.Summary{Total: 100, Updated: 40, Created: 10, Unchanged: 50}
	for i := 0; i < b.N; i++ {
		summaryTable(s)
	}
}
