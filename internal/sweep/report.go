package sweep

import (
	"time"

	"recsweep/internal/action"
)

// JobReport counts what happened to one job's directory in one cycle.
type JobReport struct {
	JobID string
	// Scanned counts directory entries carrying the recording extension.
	Scanned int
	// TooYoung counts files still inside the grace period.
	TooYoung int
	// Kept counts files the matcher did not identify as known episodes.
	Kept int
	// Tracking counts duplicates whose size has not settled yet.
	Tracking int
	// Acted counts duplicates handed to the executor.
	Acted   int
	Missing bool
	Actions []action.Result
}

// CycleReport summarises one pass over all jobs.
type CycleReport struct {
	CycleID   string
	StartedAt time.Time
	Duration  time.Duration
	Jobs      []JobReport
}

// Totals sums the per-job counters.
func (r CycleReport) Totals() JobReport {
	var total JobReport
	for _, job := range r.Jobs {
		total.Scanned += job.Scanned
		total.TooYoung += job.TooYoung
		total.Kept += job.Kept
		total.Tracking += job.Tracking
		total.Acted += job.Acted
		total.Actions = append(total.Actions, job.Actions...)
	}
	return total
}
