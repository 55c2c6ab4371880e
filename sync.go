package main

import (
	"fmt"

	"github.com/metcalfc/mdtoc/internal/batch"
	"github.com/metcalfc/mdtoc/internal/report"
	"github.com/metcalfc/mdtoc/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type syncOptions struct {
	check       bool
	dryRun      bool
	incremental bool
	report      string
	reportFile  string
}

func newSyncCmd(a *app) *cobra.Command {
	var opts syncOptions
	cmd := &cobra.Command{
		Use:   "sync [paths...]",
		Short: "Regenerate the table of contents of each document",
		Long: `Regenerate the table of contents of every Markdown document under the given
paths (default: the current directory) and write it back in place.

Examples:
  # Update everything below docs/
  mdtoc sync docs/

  # Fail when any TOC is out of date, without writing
  mdtoc sync --check .

  # Skip documents unchanged since the last run and save a JSON report
  mdtoc sync --incremental --report-file sync.json docs/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, args, opts)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.check, "check", false, "report stale documents and exit 1 instead of writing")
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would change without writing")
	f.BoolVar(&opts.incremental, "incremental", false, "skip documents unchanged since the last sync")
	f.StringVar(&opts.report, "report", "", "print a report to stdout: json or markdown")
	f.StringVar(&opts.reportFile, "report-file", "", "write a report to this file (.json for JSON, else Markdown)")
	cmd.MarkFlagsMutuallyExclusive("check", "dry-run")
	return cmd
}

func (a *app) runSync(cmd *cobra.Command, args []string, opts syncOptions) error {
	s, err := a.synchronizer()
	if err != nil {
		return err
	}
	paths, err := a.documents(args)
	if err != nil {
		return err
	}

	task := &batch.SyncTask{TOC: s, Log: a.log}
	switch {
	case opts.check:
		task.Mode = batch.ModeCheck
	case opts.dryRun:
		task.Mode = batch.ModeDryRun
	}

	var store *state.Store
	if opts.incremental || a.cfg.State.Incremental {
		store, err = state.Open(a.cfg.State.Path)
		if err != nil {
			return fmt.Errorf("open state: %w", err)
		}
		task.State = store
		a.log.Debug("incremental sync", zap.String("state", store.Path()), zap.Int("known", store.Len()))
	}

	results, sum := a.run(cmd, "Syncing", paths, task.Run)

	if store != nil {
		if err := store.Save(); err != nil {
			a.log.Warn("failed to save state", zap.Error(err))
		}
	}

	out := cmd.OutOrStdout()
	if opts.report == "" {
		printResults(out, results, opts.check)
		fmt.Fprintln(out, summaryTable(sum))
	}
	if err := a.writeReport(out, opts.report, opts.reportFile, report.Report{
		Command: "sync",
		Summary: sum,
		Files:   results,
	}); err != nil {
		return err
	}

	if sum.Failed > 0 || (opts.check && sum.Stale > 0) {
		return errFindings
	}
	return nil
}
