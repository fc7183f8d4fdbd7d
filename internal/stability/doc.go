// Package stability tracks recording sizes across polling cycles so that
// destructive actions wait until a file has stopped growing.
//
// A Tracker applies the per-file rule: any size change resets the counter,
// an unchanged size increments it, and the file counts as stable once the
// counter reaches the threshold. A Registry holds the per-job state between
// cycles. State that is not observed again during a cycle is dropped when the
// cycle is committed, so files that disappear are forgotten.
//
// Nothing here is persisted. A restart begins every file from scratch.
package stability
