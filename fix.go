package main

import (
	"fmt"

	"github.com/metcalfc/mdtoc/internal/batch"
	"github.com/spf13/cobra"
)

func newFixCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Add missing spaces after heading and list markers",
		Long: `Rewrite "#Title" as "# Title" and "-item" or "+item" as "- item" / "+ item".
Fenced code blocks are left alone, as are "*" markers, which cannot be told
apart from emphasis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.documents(args)
			if err != nil {
				return err
			}
			task := &batch.FixTask{DryRun: dryRun, Log: a.log}
			results, sum := a.run(cmd, "Fixing", paths, task.Run)

			out := cmd.OutOrStdout()
			printResults(out, results, false)
			fmt.Fprintln(out, summaryTable(sum))
			if sum.Failed > 0 {
				return errFindings
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would change without writing")
	return cmd
}
