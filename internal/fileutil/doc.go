// Package fileutil holds filesystem helpers shared by the sweep: stat with
// inode change time, and a move that refuses to overwrite and survives
// filesystem boundaries.
package fileutil
