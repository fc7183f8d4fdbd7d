package sweep

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"recsweep/internal/action"
	"recsweep/internal/config"
	"recsweep/internal/fileutil"
	"recsweep/internal/history"
	"recsweep/internal/jobs"
	"recsweep/internal/logging"
	"recsweep/internal/matcher"
	"recsweep/internal/stability"
)

// JobSource yields the jobs for one cycle.
type JobSource interface {
	Load(ctx context.Context) ([]jobs.Job, error)
}

// ActionRunner performs the action for a stable duplicate.
type ActionRunner interface {
	Apply(ctx context.Context, req action.Request) (action.Result, error)
}

// HistoryRecorder stores the outcome of each action.
type HistoryRecorder interface {
	Record(ctx context.Context, entry history.Entry) (int64, error)
}

// Option customises a Sweeper.
type Option func(*Sweeper)

// WithHistory records every executed or simulated action in recorder.
func WithHistory(recorder HistoryRecorder) Option {
	return func(s *Sweeper) {
		s.history = recorder
	}
}

// WithClock replaces time.Now for grace period checks and report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInterval overrides the wait between cycles.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithRegistry supplies the stability registry, letting callers inspect it.
func WithRegistry(registry *stability.Registry) Option {
	return func(s *Sweeper) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// Sweeper owns the cross-cycle stability state and runs sweep cycles.
type Sweeper struct {
	source    JobSource
	executor  ActionRunner
	history   HistoryRecorder
	matcher   matcher.Matcher
	registry  *stability.Registry
	interval  time.Duration
	grace     time.Duration
	extension string
	now       func() time.Time
	logger    *slog.Logger
}

// New constructs a Sweeper from the sweep settings in cfg.
func New(cfg *config.Config, source JobSource, executor ActionRunner, logger *slog.Logger, opts ...Option) *Sweeper {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	s := &Sweeper{
		source:    source,
		executor:  executor,
		matcher:   matcher.New(cfg.Sweep.SimilarityThreshold),
		registry:  stability.NewRegistry(stability.NewTracker(cfg.Sweep.StabilityThreshold)),
		interval:  cfg.Interval(),
		grace:     cfg.GracePeriod(),
		extension: cfg.Sweep.RecordingExtension,
		now:       time.Now,
		logger:    logging.NewComponentLogger(logger, "sweep"),
	}
	if s.extension == "" {
		s.extension = config.Default().Sweep.RecordingExtension
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the stability state for status reporting.
func (s *Sweeper) Registry() *stability.Registry {
	return s.registry
}

// Run executes cycles until ctx is cancelled. Cycle errors are logged and
// the loop continues with the next interval. Cancellation returns nil.
func (s *Sweeper) Run(ctx context.Context) error {
	for {
		report, err := s.RunCycle(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logging.ErrorWithContext(s.logger, "sweep cycle failed", "cycle_failed",
				logging.String(logging.FieldCycleID, report.CycleID),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the job definitions and recordings directory permissions"),
				logging.String(logging.FieldImpact, "remaining files are retried next cycle"),
			)
		}

		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// RunCycle performs one pass over all jobs. The returned report covers the
// jobs processed before any error.
func (s *Sweeper) RunCycle(ctx context.Context) (CycleReport, error) {
	report := CycleReport{
		CycleID:   uuid.NewString(),
		StartedAt: s.now(),
	}
	ctx = logging.WithCycleID(ctx, report.CycleID)
	logger := logging.WithContext(ctx, s.logger)

	loaded, err := s.source.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load jobs: %w", err)
	}

	ids := make([]string, 0, len(loaded))
	for _, job := range loaded {
		ids = append(ids, job.ID)
	}
	s.registry.Forget(ids)

	for _, job := range loaded {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		jobReport, err := s.sweepJob(logging.WithJobID(ctx, job.ID), job, report)
		report.Jobs = append(report.Jobs, jobReport)
		if err != nil {
			return report, fmt.Errorf("job %q: %w", job.ID, err)
		}
	}

	report.Duration = s.now().Sub(report.StartedAt)
	totals := report.Totals()
	logger.Debug("sweep cycle complete",
		logging.Int("job_count", len(report.Jobs)),
		logging.Int("scanned", totals.Scanned),
		logging.Int("tracking", totals.Tracking),
		logging.Int("acted", totals.Acted),
		logging.Duration("duration", report.Duration),
		logging.String(logging.FieldEventType, "cycle_complete"),
	)
	return report, nil
}

func (s *Sweeper) sweepJob(ctx context.Context, job jobs.Job, cycle CycleReport) (JobReport, error) {
	logger := logging.WithContext(ctx, s.logger)
	jobReport := JobReport{JobID: job.ID}

	s.registry.Begin(job.ID)
	committed := false
	defer func() {
		if !committed {
			s.registry.Abort(job.ID)
		}
	}()

	names, err := listDir(job.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(logger, "recordings directory missing", "recordings_dir_missing",
				logging.String("recordings_dir", job.Dir),
				logging.String(logging.FieldErrorHint, "create the directory or fix recordings_dir in the job file"),
				logging.String(logging.FieldImpact, "job skipped this cycle"),
			)
			jobReport.Missing = true
			s.registry.Commit(job.ID)
			committed = true
			return jobReport, nil
		}
		return jobReport, fmt.Errorf("list %s: %w", job.Dir, err)
	}

	cutoff := cycle.StartedAt.Add(-s.grace)
	for _, name := range names {
		if !strings.HasSuffix(name, s.extension) {
			continue
		}
		path := filepath.Join(job.Dir, name)
		st, err := fileutil.Stat(path)
		if err != nil {
			return jobReport, err
		}
		if st.IsDir {
			continue
		}
		jobReport.Scanned++
		if !st.ChangeTime.Before(cutoff) {
			jobReport.TooYoung++
			continue
		}

		decision := s.matcher.Match(name, job.Title, job.Subtitles)
		if decision.Keep {
			jobReport.Kept++
			attrs := append(logging.DecisionAttrs("duplicate_match", "keep", keepReason(decision)),
				logging.String(logging.FieldFile, name),
				logging.Float64("similarity", decision.Similarity),
			)
			logger.Debug("recording kept", logging.Args(attrs...)...)
			continue
		}

		state, stable := s.registry.Observe(job.ID, name, st.Size)
		fileLogger := logger.With(logging.String(logging.FieldFile, name))
		if !stable {
			jobReport.Tracking++
			fileLogger.Debug("duplicate not yet stable",
				logging.Int64("size_bytes", state.Size),
				logging.Int("stable_iterations", state.StableIterations),
				logging.String("subtitle", decision.Subtitle),
				logging.String(logging.FieldEventType, "duplicate_tracking"),
			)
			continue
		}

		fileLogger.Info("duplicate recording is stable",
			logging.String("subtitle", decision.Subtitle),
			logging.Float64("similarity", decision.Similarity),
			logging.String(logging.FieldAction, string(job.Action)),
			logging.String(logging.FieldEventType, "duplicate_stable"),
		)
		result, err := s.executor.Apply(ctx, action.Request{Action: job.Action, Path: path, MoveTo: job.MoveTo})
		if err != nil {
			return jobReport, fmt.Errorf("%s %s: %w", job.Action, name, err)
		}
		jobReport.Acted++
		jobReport.Actions = append(jobReport.Actions, result)

		if err := s.record(ctx, job, cycle.CycleID, name, st.Size, decision, result); err != nil {
			logging.WarnWithContext(fileLogger, "failed to record action history", "history_record_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the history database in state_dir"),
				logging.String(logging.FieldImpact, "action is missing from the audit log"),
			)
		}
	}

	s.registry.Commit(job.ID)
	committed = true
	for _, state := range s.registry.Snapshot(job.ID) {
		logger.Debug("scan state",
			logging.String(logging.FieldFile, state.File),
			logging.Int64("size_bytes", state.Size),
			logging.Int("stable_iterations", state.StableIterations),
		)
	}
	return jobReport, nil
}

func (s *Sweeper) record(ctx context.Context, job jobs.Job, cycleID, name string, size int64, decision matcher.Decision, result action.Result) error {
	if s.history == nil {
		return nil
	}
	_, err := s.history.Record(ctx, history.Entry{
		RecordedAt:  s.now(),
		CycleID:     cycleID,
		JobID:       job.ID,
		File:        name,
		Action:      string(result.Action),
		Destination: result.Destination,
		SizeBytes:   size,
		DryRun:      result.DryRun,
		Subtitle:    decision.Subtitle,
		Similarity:  decision.Similarity,
	})
	return err
}

func keepReason(decision matcher.Decision) string {
	if !decision.TitleFound {
		return "title not in filename"
	}
	return "no known subtitle above threshold"
}

// listDir returns entry names in the order the operating system reports them.
func listDir(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}
