package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSweep(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.History.RetentionDays < 0 {
		return errors.New("history.retention_days must not be negative")
	}
	return nil
}

func (c *Config) validateSweep() error {
	if c.Sweep.IntervalSeconds <= 0 {
		return errors.New("sweep.interval_seconds must be positive")
	}
	if c.Sweep.GracePeriodSeconds < 0 {
		return errors.New("sweep.grace_period_seconds must not be negative")
	}
	if c.Sweep.StabilityThreshold < 1 {
		return errors.New("sweep.stability_threshold must be at least 1")
	}
	if c.Sweep.SimilarityThreshold <= 0 || c.Sweep.SimilarityThreshold > 1 {
		return fmt.Errorf("sweep.similarity_threshold must be in (0, 1], got %v", c.Sweep.SimilarityThreshold)
	}
	if !strings.HasPrefix(c.Sweep.RecordingExtension, ".") {
		return fmt.Errorf("sweep.recording_extension must start with '.', got %q", c.Sweep.RecordingExtension)
	}
	if strings.ContainsAny(c.Sweep.DefaultMoveTo, `/\`) || c.Sweep.DefaultMoveTo == "." || c.Sweep.DefaultMoveTo == ".." {
		return fmt.Errorf("sweep.default_move_to must be a plain directory name, got %q", c.Sweep.DefaultMoveTo)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
