package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"recsweep/internal/matcher"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match <jobfile> <job-id> <filename>",
		Short: "Explain whether a recording would be treated as a duplicate",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.commandLogger()
			if err != nil {
				return err
			}
			loaded, _, err := ctx.loadJobs(cmd.Context(), args[0], logger)
			if err != nil {
				return err
			}
			job, ok := findJob(loaded, args[1])
			if !ok {
				return fmt.Errorf("job %q not found in %s", args[1], args[0])
			}

			filename := filepath.Base(args[2])
			m := matcher.New(cfg.Sweep.SimilarityThreshold)
			decision := m.Match(filename, job.Title, job.Subtitles)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader(fmt.Sprintf("%s: %s", job.ID, filename), colorize) {
				fmt.Fprintln(out, line)
			}
			if !decision.TitleFound {
				fmt.Fprintln(out, renderStatusLine("Title", statusWarn, fmt.Sprintf("%q not in filename", job.Title), colorize))
				fmt.Fprintln(out, renderStatusLine("Decision", statusOK, "keep", colorize))
				return nil
			}
			fmt.Fprintln(out, renderStatusLine("Title", statusInfo, job.Title, colorize))
			fmt.Fprintln(out, renderStatusLine("Suffix", statusInfo, fmt.Sprintf("%q", decision.Suffix), colorize))
			similarity := fmt.Sprintf("%.1f%% (threshold %.1f%%)", decision.Similarity*100, m.Threshold*100)
			if decision.Keep {
				fmt.Fprintln(out, renderStatusLine("Best similarity", statusInfo, similarity, colorize))
				fmt.Fprintln(out, renderStatusLine("Decision", statusOK, "keep", colorize))
				return nil
			}
			fmt.Fprintln(out, renderStatusLine("Matched subtitle", statusInfo, decision.Subtitle, colorize))
			fmt.Fprintln(out, renderStatusLine("Similarity", statusInfo, similarity, colorize))
			fmt.Fprintln(out, renderStatusLine("Decision", statusWarn, fmt.Sprintf("duplicate (%s once stable)", job.Action), colorize))
			return nil
		},
	}
}
