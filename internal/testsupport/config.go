package testsupport

import (
	"path/filepath"
	"testing"

	"recsweep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Grace period is zero so freshly written recordings are eligible at once.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Sweep.GracePeriodSeconds = 0
	cfgVal.Sweep.IntervalSeconds = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDryRun toggles dry-run mode on the test config.
func WithDryRun(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sweep.DryRun = enabled
	}
}

// WithStabilityThreshold overrides the number of unchanged observations.
func WithStabilityThreshold(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sweep.StabilityThreshold = n
	}
}

// WithHistory toggles the action history database.
func WithHistory(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = enabled
	}
}
