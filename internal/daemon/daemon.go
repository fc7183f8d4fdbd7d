package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"recsweep/internal/config"
	"recsweep/internal/history"
	"recsweep/internal/logging"
	"recsweep/internal/sweep"
)

// ErrAlreadyRunning is returned by Start when another process holds the lock.
var ErrAlreadyRunning = errors.New("another recsweep instance is already running")

// Daemon runs the sweep loop in the background and enforces single-instance
// execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	sweeper *sweep.Sweeper
	store   *history.Store

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	LockFilePath string
	HistoryPath  string
	TrackedJobs  int
	TrackedFiles int
}

// New constructs a daemon. store may be nil when history is disabled.
func New(cfg *config.Config, sweeper *sweep.Sweeper, store *history.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || sweeper == nil {
		return nil, errors.New("daemon requires config and sweeper")
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		sweeper:  sweeper,
		store:    store,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and launches the sweep loop.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, d.lockPath)
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running.Store(true)

	go func(done chan struct{}) {
		defer close(done)
		if err := d.sweeper.Run(runCtx); err != nil {
			d.logger.Error("sweep loop stopped", logging.Error(err))
		}
	}(d.done)

	d.logger.Info("recsweep daemon started",
		logging.String("lock", d.lockPath),
		logging.Duration("interval", d.cfg.Interval()),
		logging.Bool(logging.FieldDryRun, d.cfg.Sweep.DryRun),
		logging.String(logging.FieldEventType, "daemon_started"),
	)
	return nil
}

// Wait blocks until the sweep loop has exited.
func (d *Daemon) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Stop stops the sweep loop and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	<-d.done
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock",
			logging.Error(err),
			logging.String(logging.FieldEventType, "lock_release_failed"),
			logging.String(logging.FieldErrorHint, "remove the lock file if no recsweep process is running"),
			logging.String(logging.FieldImpact, "next start may report another instance"),
		)
	}
	d.running.Store(false)
	d.logger.Info("recsweep daemon stopped", logging.String(logging.FieldEventType, "daemon_stopped"))
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports whether the loop runs and how much stability state it holds.
func (d *Daemon) Status() Status {
	status := Status{
		Running:      d.running.Load(),
		LockFilePath: d.lockPath,
	}
	if d.store != nil {
		status.HistoryPath = d.store.Path()
	}
	registry := d.sweeper.Registry()
	for _, id := range registry.Jobs() {
		status.TrackedJobs++
		status.TrackedFiles += len(registry.Snapshot(id))
	}
	return status
}
