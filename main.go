package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/metcalfc/mdtoc/internal/batch"
	"github.com/metcalfc/mdtoc/internal/config"
	"github.com/metcalfc/mdtoc/internal/logger"
	"github.com/metcalfc/mdtoc/internal/report"
	"github.com/metcalfc/mdtoc/internal/toc"
	"github.com/spf13/cobra"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errFindings makes the process exit 1 without an extra error line; the
// command has already printed what it found.
var errFindings = errors.New("documents need attention")

// app is the state shared by every command for one invocation.
type app struct {
	configPath string
	logLevel   string
	workers    int
	noProgress bool

	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mdtoc",
		Short: "Keep Markdown tables of contents in sync with their headings",
		Long: `mdtoc regenerates the table of contents of Markdown documents from their
headings and writes it back in place. An existing TOC is replaced, otherwise the
TOC goes after a summary section or before the first heading.

Examples:
  mdtoc sync docs/            Update every document under docs/
  mdtoc sync --check .        Exit 1 if any TOC is out of date
  mdtoc check docs/guide.md   Run quality checks
  mdtoc anchor "API 设计 (v2)"  Print the anchor for a heading`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.IntVarP(&a.workers, "workers", "j", 0, "parallel workers (default: number of CPUs)")
	pf.BoolVar(&a.noProgress, "no-progress", false, "disable the progress display")

	root.AddCommand(
		newSyncCmd(a),
		newCheckCmd(a),
		newFixCmd(a),
		newAnchorCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger. Flags win over the file and environment.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logger.NewTo(&cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.Named("mdtoc")
	return nil
}

func (a *app) synchronizer() (*toc.Synchronizer, error) {
	return toc.New(a.cfg.TOCOptions())
}

// documents expands the command arguments into document paths. No arguments means ".".
func (a *app) documents(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := a.cfg.Walker().Find(args...)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	return files, nil
}

// run executes task over paths, with a progress display when stderr is a terminal.
func (a *app) run(cmd *cobra.Command, label string, paths []string, task batch.Task) ([]batch.FileResult, batch.Summary) {
	ctx := cmd.Context()
	runner := &batch.Runner{Workers: a.cfg.Workers, Log: a.log}

	if a.noProgress || !isTerminal(cmd.ErrOrStderr()) || len(paths) < 2 {
		return runner.Run(ctx, paths, task)
	}

	p := newProgress(label, len(paths), cmd.ErrOrStderr())
	runner.OnResult = p.Send
	p.Start()
	results, sum := runner.Run(ctx, paths, task)
	p.Finish()
	return results, sum
}

// writeReport prints a report to stdout in format, if set, and saves it to file,
// if set, in the format its extension names.
func (a *app) writeReport(out io.Writer, format, file string, r report.Report) error {
	r.GeneratedAt = time.Now()
	if format != "" {
		if err := report.Write(out, strings.ToLower(format), r); err != nil {
			return err
		}
	}
	if file == "" {
		return nil
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	if err := report.Write(f, report.FormatFor(file), r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
