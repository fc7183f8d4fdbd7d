package preflight

import (
	"path/filepath"

	"recsweep/internal/config"
	"recsweep/internal/jobs"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the daemon's own directories and every job's recordings
// directory.
func RunAll(cfg *config.Config, loaded []jobs.Job) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	for _, job := range loaded {
		results = append(results, CheckRecordingsDir(job))
	}
	return results
}

// CheckDefinitions resolves every entry of the definition file at path. A
// file that cannot be decoded yields a single failed result.
func CheckDefinitions(path, defaultMoveTo string) []Result {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return []Result{{Name: "Job definitions", Detail: err.Error()}}
	}
	defs, err := jobs.LoadDefinitions(absPath)
	if err != nil {
		return []Result{{Name: "Job definitions", Detail: err.Error()}}
	}
	results := make([]Result, 0, len(defs)+1)
	results = append(results, Result{Name: "Job definitions", Passed: true, Detail: absPath})
	baseDir := filepath.Dir(absPath)
	for _, def := range defs {
		results = append(results, CheckDefinition(def, baseDir, defaultMoveTo))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
