package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"recsweep/internal/action"
	"recsweep/internal/catalog"
	"recsweep/internal/expr"
	"recsweep/internal/logging"
)

// Job is a resolved definition: where to look, what the show is called, and
// which subtitles are already known.
type Job struct {
	ID        string
	Dir       string
	Title     string
	Subtitles []string
	Action    action.Kind
	MoveTo    string
}

// Loader re-reads the definition file and every catalog on each call to Load.
type Loader struct {
	path          string
	defaultMoveTo string
	logger        *slog.Logger
}

// NewLoader returns a loader for the definition file at path. Jobs without
// move_to use defaultMoveTo.
func NewLoader(path, defaultMoveTo string, logger *slog.Logger) *Loader {
	if strings.TrimSpace(defaultMoveTo) == "" {
		defaultMoveTo = action.DefaultMoveTo
	}
	return &Loader{
		path:          path,
		defaultMoveTo: defaultMoveTo,
		logger:        logging.NewComponentLogger(logger, "jobs"),
	}
}

// Path returns the definition file location.
func (l *Loader) Path() string {
	return l.path
}

// Load returns all jobs in definition order. Any unreadable catalog or
// failing condition aborts the whole load.
func (l *Loader) Load(ctx context.Context) ([]Job, error) {
	absPath, err := filepath.Abs(l.path)
	if err != nil {
		return nil, fmt.Errorf("resolve job definition path: %w", err)
	}
	defs, err := LoadDefinitions(absPath)
	if err != nil {
		return nil, err
	}
	baseDir := filepath.Dir(absPath)

	jobs := make([]Job, 0, len(defs))
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		job, err := Resolve(def, baseDir, l.defaultMoveTo)
		if err != nil {
			return nil, err
		}
		logging.WithContext(logging.WithJobID(ctx, job.ID), l.logger).Info(
			fmt.Sprintf("found %d subtitles", len(job.Subtitles)),
			logging.Int("subtitle_count", len(job.Subtitles)),
			logging.String(logging.FieldEventType, "job_loaded"),
		)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Resolve reads the catalog of def and collects the known subtitles.
// Relative paths are taken relative to baseDir.
func Resolve(def Definition, baseDir, defaultMoveTo string) (Job, error) {
	kind, err := action.ParseAction(def.Action)
	if err != nil {
		return Job{}, fmt.Errorf("job %q: %w", def.ID, err)
	}
	moveTo := strings.TrimSpace(def.MoveTo)
	if moveTo == "" {
		moveTo = defaultMoveTo
	}
	validRow, err := expr.Compile(def.ValidRowCondition)
	if err != nil {
		return Job{}, fmt.Errorf("job %q: valid_row_condition: %w", def.ID, err)
	}
	knownSubtitle, err := expr.Compile(def.KnownSubtitleCondition)
	if err != nil {
		return Job{}, fmt.Errorf("job %q: known_subtitle_condition: %w", def.ID, err)
	}

	catalogPath := resolvePath(baseDir, def.File)
	rows, err := catalog.ReadSheet(catalogPath, catalog.Options{Sheet: def.Sheet, Encoding: def.Encoding})
	if err != nil {
		return Job{}, fmt.Errorf("job %q: %w", def.ID, err)
	}

	subtitles, err := collectSubtitles(rows, int(def.SubtitleColumn), validRow, knownSubtitle)
	if err != nil {
		return Job{}, fmt.Errorf("job %q: %w", def.ID, err)
	}

	return Job{
		ID:        def.ID,
		Dir:       resolvePath(baseDir, def.RecordingsDir),
		Title:     def.Title,
		Subtitles: subtitles,
		Action:    kind,
		MoveTo:    moveTo,
	}, nil
}

func collectSubtitles(rows [][]string, column int, validRow, knownSubtitle *expr.Expr) ([]string, error) {
	subtitles := make([]string, 0, len(rows))
	for i, row := range rows {
		valid, err := validRow.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: valid_row_condition: %w", i+1, err)
		}
		if !valid || column >= len(row) || row[column] == "" {
			continue
		}
		known, err := knownSubtitle.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: known_subtitle_condition: %w", i+1, err)
		}
		if known {
			subtitles = append(subtitles, row[column])
		}
	}
	return subtitles, nil
}

func resolvePath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return filepath.Clean(path)
}
