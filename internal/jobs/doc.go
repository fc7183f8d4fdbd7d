// Package jobs loads sweep job definitions and resolves them into Jobs.
//
// A definition file lists one entry per recordings directory: the catalog
// holding the episode subtitles, the show title, and what to do with
// duplicates. JSON, YAML, and TOML files are accepted. Loader.Load reads
// every catalog and returns the derived Jobs in definition order; it is
// called again at the start of every sweep cycle so catalog edits take
// effect without a restart.
package jobs
