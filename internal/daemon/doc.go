// Package daemon coordinates the long-running recsweep process.
//
// It wires configuration, the sweep loop and the history store into a single
// lifecycle with flock-based locking so two sweepers never act on the same
// recordings. Sweep logic lives in package sweep; the daemon only handles
// startup, shutdown and status.
package daemon
