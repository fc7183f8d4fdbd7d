package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"recsweep/internal/config"
)

// Options describes logger construction parameters.
//
// OutputPaths accepts "stdout", "stderr", or file paths. Terminal targets use
// Format; files always receive JSON so run logs stay machine readable.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
	// RunID, when set, is attached to every record as run_id.
	RunID string
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	paths := opts.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stdout"}
	}

	seen := make(map[string]struct{}, len(paths))
	handlers := make([]slog.Handler, 0, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout", "stderr":
			var w io.Writer = os.Stdout
			if trimmed == "stderr" {
				w = os.Stderr
			}
			if format == "json" {
				handlers = append(handlers, newJSONHandler(w, levelVar, addSource))
			} else {
				handlers = append(handlers, newPrettyHandler(w, levelVar, addSource))
			}
		default:
			file, err := openLogFile(trimmed)
			if err != nil {
				return nil, err
			}
			handlers = append(handlers, newJSONHandler(file, levelVar, addSource))
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = NoopHandler{}
	case 1:
		handler = handlers[0]
	default:
		handler = slogmulti.Fanout(handlers...)
	}
	if id := strings.TrimSpace(opts.RunID); id != "" {
		handler = newRunIDHandler(handler, id)
	}
	return slog.New(handler), nil
}

// NewFromConfig creates a console logger using application config defaults.
// Daemon runs add a per-run file through New directly.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}
	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr"},
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
