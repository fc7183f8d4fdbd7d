// Package action applies the configured disposal to a confirmed duplicate
// recording: move it into a sibling subdirectory or delete it. In dry-run
// mode the executor only reports what it would have done.
package action
