// Package logging assembles structured slog loggers and formatting helpers used
// across recsweep.
//
// It owns the console and JSON handlers, fans records out to several sinks,
// and exposes context-aware helpers so sweep code can tag log lines with the
// job, cycle, and file being processed. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same keys.
package logging
