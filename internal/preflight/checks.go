package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"recsweep/internal/action"
	"recsweep/internal/catalog"
	"recsweep/internal/jobs"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckRecordingsDir verifies a job's recordings directory and, when it
// already exists, the subdirectory duplicates are moved into.
func CheckRecordingsDir(job jobs.Job) Result {
	name := fmt.Sprintf("Recordings %s", job.ID)
	result := CheckDirectoryAccess(name, job.Dir)
	if !result.Passed || job.Action != action.Move {
		return result
	}
	target := filepath.Join(job.Dir, job.MoveTo)
	if info, err := os.Stat(target); err == nil {
		if !info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: move target is not a directory)", target)}
		}
		if err := unix.Access(target, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: move target not writable: %v)", target, err)}
		}
	}
	return result
}

// CheckDefinition resolves a single job definition and reports how many
// subtitles its catalog yields. A missing sheet lists the available ones.
func CheckDefinition(def jobs.Definition, baseDir, defaultMoveTo string) Result {
	name := fmt.Sprintf("Job %s", def.ID)
	job, err := jobs.Resolve(def, baseDir, defaultMoveTo)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, catalog.ErrSheetNotFound) {
			catalogPath := def.File
			if !filepath.IsAbs(catalogPath) {
				catalogPath = filepath.Join(baseDir, catalogPath)
			}
			if names, nameErr := catalog.SheetNames(catalogPath); nameErr == nil && len(names) > 0 {
				detail += fmt.Sprintf(" (available: %s)", strings.Join(names, ", "))
			}
		}
		return Result{Name: name, Detail: detail}
	}
	detail := fmt.Sprintf("%d subtitles, %s", len(job.Subtitles), job.Action)
	if job.Action == action.Move {
		detail += " to " + job.MoveTo
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
