package main

import (
	"fmt"
	"strings"

	"github.com/metcalfc/mdtoc/internal/reader"
	"github.com/metcalfc/mdtoc/internal/toc"
	"github.com/spf13/cobra"
)

func newAnchorCmd(a *app) *cobra.Command {
	var file bool
	cmd := &cobra.Command{
		Use:   "anchor <title...>",
		Short: "Print the link anchor for a heading title",
		Long: `Print the anchor mdtoc links a heading to. With --file, print the anchor of
every heading in the given documents using the configured collision policy.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !file {
				fmt.Fprintln(out, toc.Anchor(strings.Join(args, " ")))
				return nil
			}

			s, err := a.synchronizer()
			if err != nil {
				return err
			}
			for _, path := range args {
				doc, err := reader.Load(path)
				if err != nil {
					return err
				}
				headings := s.Extract(doc.Text)
				for i, e := range s.Entries(headings) {
					fmt.Fprintf(out, "%s:%d\t#%s\t%s\n", path, headings[i].Line, e.Anchor, e.Title)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&file, "file", "f", false, "treat arguments as documents and list every heading's anchor")
	return cmd
}
