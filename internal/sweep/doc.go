// Package sweep drives the polling loop that finds duplicate recordings and
// acts on them once they have stopped growing.
//
// Every cycle reloads the job definitions, lists each job's recordings
// directory, filters candidates through the matcher and the stability
// registry, and hands stable duplicates to the action executor. Cycles run
// sequentially on the caller's goroutine; only the wait between cycles
// blocks on the context.
package sweep
