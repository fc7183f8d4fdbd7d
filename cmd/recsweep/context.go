package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"recsweep/internal/config"
	"recsweep/internal/jobs"
	"recsweep/internal/logging"
)

type commandContext struct {
	configFlag   *string
	testFlag     *bool
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, testFlag *bool, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		testFlag:     testFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.testFlag != nil && *c.testFlag {
			cfg.Sweep.DryRun = true
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// commandLogger writes console logs to stderr for one-shot commands.
func (c *commandContext) commandLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) loadJobs(cmdCtx context.Context, jobFile string, logger *slog.Logger) ([]jobs.Job, *jobs.Loader, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(jobFile) == "" {
		return nil, nil, errors.New("job file is required")
	}
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	loader := jobs.NewLoader(jobFile, cfg.Sweep.DefaultMoveTo, logger)
	loaded, err := loader.Load(cmdCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("load jobs: %w", err)
	}
	return loaded, loader, nil
}

func findJob(loaded []jobs.Job, id string) (jobs.Job, bool) {
	for _, job := range loaded {
		if job.ID == id {
			return job, true
		}
	}
	return jobs.Job{}, false
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
