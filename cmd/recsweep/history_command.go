package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"recsweep/internal/history"
)

type historyView struct {
	ID          int64     `json:"id"`
	RecordedAt  time.Time `json:"recorded_at"`
	CycleID     string    `json:"cycle_id"`
	JobID       string    `json:"job_id"`
	File        string    `json:"file"`
	Action      string    `json:"action"`
	Destination string    `json:"destination,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	DryRun      bool      `json:"dry_run"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Similarity  float64   `json:"similarity"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var jobID string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent actions from the audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := cfg.HistoryPath()
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				if asJSON {
					return writeJSON(cmd, []historyView{})
				}
				fmt.Fprintln(out, "No history recorded")
				return nil
			}

			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), history.Query{JobID: jobID, Limit: limit})
			if err != nil {
				return err
			}
			if asJSON {
				views := make([]historyView, 0, len(entries))
				for _, e := range entries {
					views = append(views, historyView(e))
				}
				return writeJSON(cmd, views)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				act := e.Action
				if e.DryRun {
					act += " (dry run)"
				}
				rows = append(rows, []string{
					e.RecordedAt.Local().Format("2006-01-02 15:04:05"),
					e.JobID,
					e.File,
					act,
					e.Destination,
					fmt.Sprintf("%.1f%%", e.Similarity*100),
				})
			}
			headers := []string{"Time", "Job", "File", "Action", "Destination", "Similarity"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobID, "job", "j", "", "Only show actions of this job")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
