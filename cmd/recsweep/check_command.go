package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"recsweep/internal/jobs"
	"recsweep/internal/logging"
	"recsweep/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <jobfile>",
		Short: "Check job definitions, catalogs and directory access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			definitions := preflight.CheckDefinitions(args[0], cfg.Sweep.DefaultMoveTo)
			printResults(out, "Job definitions", definitions, colorize)

			var directories []preflight.Result
			if len(preflight.Failed(definitions)) == 0 {
				loader := jobs.NewLoader(args[0], cfg.Sweep.DefaultMoveTo, logging.NewNop())
				loaded, err := loader.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load jobs: %w", err)
				}
				directories = preflight.RunAll(cfg, loaded)
				fmt.Fprintln(out)
				printResults(out, "Directories", directories, colorize)
			}

			failed := len(preflight.Failed(definitions)) + len(preflight.Failed(directories))
			fmt.Fprintln(out)
			if failed > 0 {
				fmt.Fprintln(out, renderStatusLine("Summary", statusError, fmt.Sprintf("%d check(s) failed", failed), colorize))
				return fmt.Errorf("%d check(s) failed", failed)
			}
			fmt.Fprintln(out, renderStatusLine("Summary", statusOK, "ready", colorize))
			return nil
		},
	}
}

func printResults(out io.Writer, title string, results []preflight.Result, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
	for _, result := range results {
		kind := statusOK
		if !result.Passed {
			kind = statusError
		}
		fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
}
