// Package history keeps an append-only SQLite audit log of every action the
// sweep executed or simulated. It is write-mostly: the sweep never reads it
// back, only the history command and tests do.
package history
