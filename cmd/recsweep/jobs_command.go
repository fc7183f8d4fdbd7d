package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"recsweep/internal/action"
	"recsweep/internal/jobs"
)

type jobView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	RecordingsDir string   `json:"recordings_dir"`
	Action        string   `json:"action"`
	MoveTo        string   `json:"move_to,omitempty"`
	Subtitles     []string `json:"subtitles"`
}

func newJobView(job jobs.Job) jobView {
	view := jobView{
		ID:            job.ID,
		Title:         job.Title,
		RecordingsDir: job.Dir,
		Action:        string(job.Action),
		Subtitles:     job.Subtitles,
	}
	if job.Action == action.Move {
		view.MoveTo = job.MoveTo
	}
	if view.Subtitles == nil {
		view.Subtitles = []string{}
	}
	return view
}

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var showSubtitles bool

	cmd := &cobra.Command{
		Use:   "jobs <jobfile>",
		Short: "List resolved jobs and their known subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.commandLogger()
			if err != nil {
				return err
			}
			loaded, _, err := ctx.loadJobs(cmd.Context(), args[0], logger)
			if err != nil {
				return err
			}
			if asJSON {
				views := make([]jobView, 0, len(loaded))
				for _, job := range loaded {
					views = append(views, newJobView(job))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(loaded) == 0 {
				fmt.Fprintln(out, "No jobs defined")
				return nil
			}
			rows := make([][]string, 0, len(loaded))
			for _, job := range loaded {
				target := string(job.Action)
				if job.Action == action.Move {
					target += " -> " + job.MoveTo
				}
				rows = append(rows, []string{job.ID, job.Title, job.Dir, target, strconv.Itoa(len(job.Subtitles))})
			}
			colorize := shouldColorize(out)
			headers := []string{"ID", "Title", "Directory", "Action", "Subtitles"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, colorize))

			if showSubtitles {
				for _, job := range loaded {
					fmt.Fprintln(out)
					for _, line := range renderSectionHeader(job.ID, colorize) {
						fmt.Fprintln(out, line)
					}
					for _, subtitle := range job.Subtitles {
						fmt.Fprintf(out, "  %s\n", subtitle)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&showSubtitles, "subtitles", "s", false, "List every known subtitle")
	return cmd
}
