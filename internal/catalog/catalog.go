package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrSheetNotFound is returned when the requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrUnsupportedFormat is returned for file extensions without a reader.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Options selects what to read from a catalog file.
type Options struct {
	// Sheet names the worksheet. Empty selects the first sheet. Ignored for
	// delimited text files.
	Sheet string
	// Encoding is the character set of delimited text files, for example
	// "windows-1252" or "latin1". Empty means UTF-8.
	Encoding string
}

// ReadSheet returns the rows of one sheet of the catalog at path.
func ReadSheet(path string, opts Options) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch format(path) {
	case ".ods":
		rows, err = readODS(path, opts.Sheet)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, opts.Sheet)
	case ".csv":
		rows, err = readDelimited(path, ',', opts.Encoding)
	case ".tsv":
		rows, err = readDelimited(path, '\t', opts.Encoding)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}
	return trimRows(rows), nil
}

// SheetNames lists the sheets of a spreadsheet in document order. Delimited
// text files report a single sheet named after the file.
func SheetNames(path string) ([]string, error) {
	switch format(path) {
	case ".ods":
		return odsSheetNames(path)
	case ".xlsx", ".xlsm":
		return xlsxSheetNames(path)
	case ".csv", ".tsv":
		return []string{strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

func format(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func sheetNotFound(path, sheet string) error {
	return fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, filepath.Base(path))
}

// trimRows drops trailing empty cells of every row and trailing empty rows.
func trimRows(rows [][]string) [][]string {
	last := -1
	for i, row := range rows {
		end := len(row)
		for end > 0 && row[end-1] == "" {
			end--
		}
		rows[i] = row[:end]
		if end > 0 {
			last = i
		}
	}
	return rows[:last+1]
}
