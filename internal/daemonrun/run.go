package daemonrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"recsweep/internal/action"
	"recsweep/internal/config"
	"recsweep/internal/daemon"
	"recsweep/internal/history"
	"recsweep/internal/jobs"
	"recsweep/internal/logging"
	"recsweep/internal/preflight"
	"recsweep/internal/sweep"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the recsweep daemon loop for the job definitions in jobFile and
// blocks until SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, jobFile string, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if strings.TrimSpace(jobFile) == "" {
		return errors.New("job file is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	runStamp := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("recsweep-%s.log", runStamp))
	level := opts.LogLevel
	if strings.TrimSpace(level) == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", logPath},
		Development: opts.Development,
		RunID:       uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update recsweep.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "recsweep-*.log", Exclude: []string{logPath}},
	)

	loader := jobs.NewLoader(jobFile, cfg.Sweep.DefaultMoveTo, logger)
	loaded, err := loader.Load(signalCtx)
	if err != nil {
		logger.Error("initial job load failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "job_load_failed"),
			logging.String(logging.FieldErrorHint, "run 'recsweep check' against the job file"),
		)
		return fmt.Errorf("load jobs: %w", err)
	}
	logConfigSnapshot(logger, cfg, loader.Path(), len(loaded))
	warnPreflight(logger, preflight.RunAll(cfg, loaded))

	var store *history.Store
	var sweepOpts []sweep.Option
	if cfg.History.Enabled {
		store, err = openHistory(signalCtx, cfg, logger)
		if err != nil {
			return err
		}
		sweepOpts = append(sweepOpts, sweep.WithHistory(store))
	}

	executor := action.NewExecutor(cfg.Sweep.DryRun, logger)
	sweeper := sweep.New(cfg, loader, executor, logger, sweepOpts...)
	d, err := daemon.New(cfg, sweeper, store, logger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		return err
	}

	d.Wait()
	status := d.Status()
	logger.Info("recsweep daemon shutting down",
		logging.Int("tracked_jobs", status.TrackedJobs),
		logging.Int("tracked_files", status.TrackedFiles),
		logging.String(logging.FieldEventType, "daemon_shutdown"),
	)
	return nil
}

func openHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*history.Store, error) {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Error("open history store", logging.Error(err))
		return nil, fmt.Errorf("open history: %w", err)
	}
	if cfg.History.RetentionDays <= 0 {
		return store, nil
	}
	cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
	removed, err := store.Prune(ctx, cutoff)
	if err != nil {
		logging.WarnWithContext(logger, "history prune failed", "history_prune_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the history database in state_dir"),
			logging.String(logging.FieldImpact, "old audit entries are kept"),
		)
		return store, nil
	}
	if removed > 0 {
		logger.Info("pruned action history",
			logging.Int64("removed", removed),
			logging.Int("retention_days", cfg.History.RetentionDays),
			logging.String(logging.FieldEventType, "history_pruned"),
		)
	}
	return store, nil
}

func warnPreflight(logger *slog.Logger, results []preflight.Result) {
	for _, result := range preflight.Failed(results) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldErrorHint, "fix the directory or permissions; sweeping continues"),
			logging.String(logging.FieldImpact, "affected job may fail or be skipped each cycle"),
		)
	}
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "recsweep.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func logConfigSnapshot(logger *slog.Logger, cfg *config.Config, jobFile string, jobCount int) {
	if logger == nil || cfg == nil {
		return
	}
	logger.Info("configuration snapshot",
		logging.String(logging.FieldEventType, "config_snapshot"),
		logging.String("job_file", jobFile),
		logging.Int("job_count", jobCount),
		logging.Duration("interval", cfg.Interval()),
		logging.Duration("grace_period", cfg.GracePeriod()),
		logging.Int("stability_threshold", cfg.Sweep.StabilityThreshold),
		logging.Float64("similarity_threshold", cfg.Sweep.SimilarityThreshold),
		logging.String("recording_extension", cfg.Sweep.RecordingExtension),
		logging.Bool(logging.FieldDryRun, cfg.Sweep.DryRun),
		logging.Bool("history_enabled", cfg.History.Enabled),
		logging.String("state_dir", cfg.Paths.StateDir),
	)
}
