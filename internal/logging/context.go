package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldJobID is the standardized key for sweep job identifiers.
	FieldJobID = "job_id"
	// FieldCycleID is the standardized key for poll cycle identifiers.
	FieldCycleID = "cycle_id"
	// FieldRunID is attached to every record emitted by one daemon process.
	FieldRunID = "run_id"
	// FieldFile is the standardized key for recording file names.
	FieldFile = "file"
	// FieldAction is the standardized key for the move/delete action.
	FieldAction = "action"
	// FieldDryRun marks records produced while no filesystem changes are made.
	FieldDryRun = "dry_run"
	// FieldEventType classifies a record for filtering.
	FieldEventType = "event_type"
	// FieldDecisionType names the decision being logged.
	FieldDecisionType = "decision_type"
	// FieldErrorHint suggests the next step after a failure.
	FieldErrorHint = "error_hint"
	// FieldImpact states the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	jobIDKey contextKey = iota
	cycleIDKey
)

// WithJobID returns a context carrying the job identifier for log enrichment.
func WithJobID(ctx context.Context, jobID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, jobIDKey, strings.TrimSpace(jobID))
}

// WithCycleID returns a context carrying the poll cycle identifier.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, cycleIDKey, strings.TrimSpace(cycleID))
}

// JobIDFromContext returns the job identifier stored in ctx.
func JobIDFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, jobIDKey)
}

// CycleIDFromContext returns the cycle identifier stored in ctx.
func CycleIDFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, cycleIDKey)
}

func stringFromContext(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(key).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := CycleIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCycleID, id))
	}
	if id, ok := JobIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldJobID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
