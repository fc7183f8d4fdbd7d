package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSweep()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSweep() {
	c.Sweep.RecordingExtension = strings.TrimSpace(c.Sweep.RecordingExtension)
	if c.Sweep.RecordingExtension == "" {
		c.Sweep.RecordingExtension = defaultRecordingExtension
	}
	c.Sweep.DefaultMoveTo = strings.TrimSpace(c.Sweep.DefaultMoveTo)
	if c.Sweep.DefaultMoveTo == "" {
		c.Sweep.DefaultMoveTo = defaultMoveTo
	}
	if !c.Sweep.DryRun {
		if value, ok := os.LookupEnv("RECSWEEP_DRY_RUN"); ok {
			if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
				c.Sweep.DryRun = parsed
			}
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("RECSWEEP_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
