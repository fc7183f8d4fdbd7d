package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"recsweep/internal/action"
	"recsweep/internal/history"
	"recsweep/internal/jobs"
	"recsweep/internal/sweep"
)

func newOnceCommand(ctx *commandContext) *cobra.Command {
	var cycles int

	cmd := &cobra.Command{
		Use:   "once <jobfile>",
		Short: "Run sweep cycles in the foreground and print a report",
		Long: "Run a fixed number of sweep cycles, waiting sweep.interval_seconds between them.\n" +
			"Stability state is not kept between invocations, so acting on a recording\n" +
			"needs at least stability_threshold+1 cycles in one call.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cycles < 1 {
				return errors.New("--cycles must be at least 1")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.commandLogger()
			if err != nil {
				return err
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another recsweep instance holds %s", cfg.LockPath())
			}
			defer func() { _ = lock.Unlock() }()

			var opts []sweep.Option
			if cfg.History.Enabled {
				store, err := history.Open(cfg.HistoryPath())
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
				opts = append(opts, sweep.WithHistory(store))
			}

			loader := jobs.NewLoader(args[0], cfg.Sweep.DefaultMoveTo, logger)
			sweeper := sweep.New(cfg, loader, action.NewExecutor(cfg.Sweep.DryRun, logger), logger, opts...)

			out := cmd.OutOrStdout()
			for i := 1; i <= cycles; i++ {
				report, err := sweeper.RunCycle(cmd.Context())
				if err != nil {
					return fmt.Errorf("cycle %d: %w", i, err)
				}
				printCycleReport(out, i, report, cfg.Sweep.DryRun, shouldColorize(out))
				if i == cycles {
					break
				}
				select {
				case <-cmd.Context().Done():
					return nil
				case <-time.After(cfg.Interval()):
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&cycles, "cycles", "n", 1, "Number of cycles to run")
	return cmd
}

func printCycleReport(out io.Writer, index int, report sweep.CycleReport, dryRun bool, colorize bool) {
	title := fmt.Sprintf("Cycle %d", index)
	if dryRun {
		title += " (dry run)"
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}

	rows := make([][]string, 0, len(report.Jobs)+1)
	for _, job := range report.Jobs {
		id := job.JobID
		if job.Missing {
			id += " (missing dir)"
		}
		rows = append(rows, []string{
			id,
			strconv.Itoa(job.Scanned),
			strconv.Itoa(job.TooYoung),
			strconv.Itoa(job.Kept),
			strconv.Itoa(job.Tracking),
			strconv.Itoa(job.Acted),
		})
	}
	headers := []string{"Job", "Scanned", "Too young", "Kept", "Tracking", "Acted"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}
	fmt.Fprintln(out, renderTable(headers, rows, aligns, colorize))

	for _, result := range report.Totals().Actions {
		verb := string(result.Action)
		if result.DryRun {
			verb = "would " + verb
		}
		line := fmt.Sprintf("%s %s", verb, result.Source)
		if result.Destination != "" {
			line += " -> " + result.Destination
		}
		fmt.Fprintln(out, line)
	}
}
