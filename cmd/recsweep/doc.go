// Package main hosts the recsweep CLI entrypoint and command graph.
//
// Invoked with a job file, recsweep runs the sweep daemon in the foreground.
// The subcommands inspect the same job file without starting the loop: they
// run single cycles, list resolved jobs, explain match decisions, show the
// action history and check directory access.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// only surfaced here.
package main
