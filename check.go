package main

import (
	"fmt"

	"github.com/metcalfc/mdtoc/internal/batch"
	"github.com/metcalfc/mdtoc/internal/quality"
	"github.com/metcalfc/mdtoc/internal/report"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var reportFormat, reportFile string
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Run quality checks on documents",
		Long: `Check documents for structure, TOC, code block, formatting, length and
in-page link problems. Thresholds come from the quality section of the config.
Exits 1 when any document has issues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.synchronizer()
			if err != nil {
				return err
			}
			paths, err := a.documents(args)
			if err != nil {
				return err
			}

			task := &batch.CheckTask{Checker: quality.NewChecker(a.cfg.Quality, s)}
			results, sum := a.run(cmd, "Checking", paths, task.Run)
			reports := task.Reports()
			qs := quality.Summarize(reports)

			out := cmd.OutOrStdout()
			if reportFormat == "" {
				for _, r := range sortReports(reports) {
					printReport(out, r)
				}
				fmt.Fprintln(out, qualityLine(qs))
			}
			if err := a.writeReport(out, reportFormat, reportFile, report.Report{
				Command: "check",
				Summary: sum,
				Files:   results,
				Quality: &qs,
				Checks:  reports,
			}); err != nil {
				return err
			}

			if qs.Warning > 0 || qs.Errored > 0 {
				return errFindings
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reportFormat, "report", "", "print a report to stdout: json or markdown")
	cmd.Flags().StringVar(&reportFile, "report-file", "", "write a report to this file (.json for JSON, else Markdown)")
	return cmd
}
