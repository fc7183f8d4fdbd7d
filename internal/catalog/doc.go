// Package catalog reads the episode catalog a job points at: one sheet of an
// OpenDocument (.ods) or Office Open XML (.xlsx) spreadsheet, or a delimited
// text file (.csv, .tsv). Every reader returns rows of cell text with trailing
// empty cells and trailing empty rows removed.
package catalog
