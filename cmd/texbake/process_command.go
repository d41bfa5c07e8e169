package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"texbake/internal/archive"
	"texbake/internal/history"
	"texbake/internal/logging"
	"texbake/internal/pipeline"
	"texbake/internal/preflight"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool
	var workers int
	var skipHistory bool

	cmd := &cobra.Command{
		Use:   "process [dir]",
		Short: "Extract and materialize every texture archive in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir := "."
			if len(args) == 1 {
				workDir = args[0]
			}
			absDir, err := filepath.Abs(workDir)
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Processing.Workers = workers
			}

			archives, err := archive.Discover(absDir)
			if err != nil {
				return fmt.Errorf("discover archives: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(archives) == 0 {
				fmt.Fprintf(out, "No archives found in %s\n", absDir)
				return nil
			}

			checks := preflight.Run(absDir, archives, cfg.Processing.MinFreeSpaceMiB)
			printPreflight(out, checks)
			if !preflight.Passed(checks) {
				return errors.New("preflight checks failed")
			}

			printArchiveListing(out, archives)
			if !assumeYes {
				ok, err := confirm(cmd.InOrStdin(), out, len(archives))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			var store *history.Store
			if !skipHistory {
				store, err = history.Open(cfg)
				if err != nil {
					logger.Warn("history unavailable", logging.Error(err))
				} else {
					defer func() { _ = store.Close() }()
				}
			}

			runner, err := pipeline.New(cfg, logger, store)
			if err != nil {
				return err
			}
			outcomes, err := runner.Process(cmd.Context(), absDir, archives)
			if err != nil {
				return err
			}

			printOutcomes(out, outcomes)
			for _, outcome := range outcomes {
				if outcome.Err != nil {
					return errors.New("one or more archives failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Process without asking for confirmation")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override the configured worker count")
	cmd.Flags().BoolVar(&skipHistory, "no-history", false, "Skip recording this run in the history database")
	return cmd
}

func printPreflight(out io.Writer, checks []preflight.Result) {
	rows := make([][]string, 0, len(checks))
	for _, check := range checks {
		status := "ok"
		if !check.Passed {
			status = "FAIL"
		}
		rows = append(rows, []string{check.Name, status, check.Detail})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Check", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}

func printArchiveListing(out io.Writer, archives []string) {
	rows := make([][]string, 0, len(archives))
	for _, path := range archives {
		rows = append(rows, []string{displayTitle(path), filepath.Base(path)})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Material", "Archive"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	))
}

func printOutcomes(out io.Writer, outcomes []pipeline.Outcome) {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		status := "completed"
		detail := outcome.Dir
		if outcome.Err != nil {
			status = "failed"
			detail = outcome.Err.Error()
		}
		rows = append(rows, []string{
			filepath.Base(outcome.Archive),
			outcome.Material,
			status,
			outcome.Duration.Round(roundTo).String(),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Archive", "Material", "Status", "Duration", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
}

// confirm asks before touching anything. Without a terminal on stdin the
// answer cannot be read, so --yes is required there.
func confirm(in io.Reader, out io.Writer, count int) (bool, error) {
	stdin, isFile := in.(*os.File)
	if isFile && !isTerminal(stdin.Fd()) {
		return false, errors.New("stdin is not a terminal; pass --yes to proceed")
	}

	fmt.Fprintf(out, "Process %d archive(s)? (y/N) ", count)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
