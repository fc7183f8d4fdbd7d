package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"recsweep/internal/fileutil"
	"recsweep/internal/logging"
)

// Kind names the disposal applied to a duplicate recording.
type Kind string

const (
	Move   Kind = "move"
	Delete Kind = "delete"
)

// DefaultMoveTo is the subdirectory used when a job does not name one.
const DefaultMoveTo = "duplicate"

// ErrUnknownAction is returned for action names other than move or delete.
var ErrUnknownAction = errors.New("unknown action")

// ParseAction maps a job's action field onto a Kind. An empty value means Move.
func ParseAction(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(Move):
		return Move, nil
	case string(Delete):
		return Delete, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownAction, value)
	}
}

// Request describes one action against one file.
type Request struct {
	Action Kind
	Path   string
	MoveTo string
}

// Result reports what the executor did or would have done.
type Result struct {
	Action      Kind
	Source      string
	Destination string
	DryRun      bool
}

// Executor performs filesystem actions. The zero value is a live executor
// without logging.
type Executor struct {
	DryRun bool
	logger *slog.Logger
}

// NewExecutor constructs an executor bound to logger.
func NewExecutor(dryRun bool, logger *slog.Logger) *Executor {
	return &Executor{DryRun: dryRun, logger: logging.NewComponentLogger(logger, "action")}
}

// Apply runs the request. OS errors are returned unchanged in the chain so
// callers can match fs.ErrExist or fs.ErrNotExist.
func (e *Executor) Apply(ctx context.Context, req Request) (Result, error) {
	logger := logging.WithContext(ctx, e.log())
	result := Result{Action: req.Action, Source: req.Path, DryRun: e.DryRun}

	switch req.Action {
	case Move:
		moveTo := strings.TrimSpace(req.MoveTo)
		if moveTo == "" {
			moveTo = DefaultMoveTo
		}
		targetDir := filepath.Join(filepath.Dir(req.Path), moveTo)
		result.Destination = filepath.Join(targetDir, filepath.Base(req.Path))
		if e.DryRun {
			logger.Info("would move duplicate recording",
				logging.String(logging.FieldFile, filepath.Base(req.Path)),
				logging.String("destination", result.Destination),
				logging.Bool(logging.FieldDryRun, true),
				logging.String(logging.FieldEventType, "duplicate_move_simulated"),
			)
			return result, nil
		}
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return result, err
		}
		if err := fileutil.MoveFile(req.Path, result.Destination); err != nil {
			return result, err
		}
		logger.Info("moved duplicate recording",
			logging.String(logging.FieldFile, filepath.Base(req.Path)),
			logging.String("destination", result.Destination),
			logging.String(logging.FieldEventType, "duplicate_moved"),
		)
		return result, nil
	case Delete:
		if e.DryRun {
			logger.Info("would delete duplicate recording",
				logging.String(logging.FieldFile, filepath.Base(req.Path)),
				logging.Bool(logging.FieldDryRun, true),
				logging.String(logging.FieldEventType, "duplicate_delete_simulated"),
			)
			return result, nil
		}
		if err := os.Remove(req.Path); err != nil {
			return result, err
		}
		logger.Info("deleted duplicate recording",
			logging.String(logging.FieldFile, filepath.Base(req.Path)),
			logging.String(logging.FieldEventType, "duplicate_deleted"),
		)
		return result, nil
	default:
		return result, fmt.Errorf("%w %q", ErrUnknownAction, req.Action)
	}
}

func (e *Executor) log() *slog.Logger {
	if e == nil || e.logger == nil {
		return logging.NewNop()
	}
	return e.logger
}
