package catalog

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
)

// maxRepeat bounds the expansion of repeated rows and cells. Spreadsheet
// applications pad sheets with huge repeat counts of empty cells.
const maxRepeat = 1 << 16

func openODSContent(path string) (io.ReadCloser, func() error, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	content, err := archive.Open("content.xml")
	if err != nil {
		archive.Close()
		return nil, nil, fmt.Errorf("open spreadsheet content: %w", err)
	}
	return content, archive.Close, nil
}

func readODS(path, sheet string) ([][]string, error) {
	content, closeArchive, err := openODSContent(path)
	if err != nil {
		return nil, err
	}
	defer closeArchive()
	defer content.Close()

	rows, found, err := parseODSTable(xml.NewDecoder(content), sheet)
	if err != nil {
		return nil, fmt.Errorf("parse spreadsheet content: %w", err)
	}
	if !found {
		return nil, sheetNotFound(path, sheet)
	}
	return rows, nil
}

func odsSheetNames(path string) ([]string, error) {
	content, closeArchive, err := openODSContent(path)
	if err != nil {
		return nil, err
	}
	defer closeArchive()
	defer content.Close()

	var names []string
	decoder := xml.NewDecoder(content)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse spreadsheet content: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok && isElement(start.Name, nsTable, "table") {
			names = append(names, attr(start, nsTable, "name"))
		}
	}
}

// odsTable accumulates rows of one table element.
type odsTable struct {
	rows         [][]string
	pendingEmpty int

	row          []string
	rowRepeat    int
	pendingCells int

	inCell      bool
	cellRepeat  int
	cellValue   string
	cellTyped   bool
	cellText    strings.Builder
	paragraphs  int
	inParagraph int
	annotation  int
}

func parseODSTable(decoder *xml.Decoder, sheet string) ([][]string, bool, error) {
	var (
		table  *odsTable
		depth  int
		inside bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !inside {
				if isElement(t.Name, nsTable, "table") {
					name := attr(t, nsTable, "name")
					if sheet == "" || name == sheet {
						inside = true
						depth = 0
						table = &odsTable{}
					}
				}
				continue
			}
			depth++
			table.start(t)
		case xml.EndElement:
			if !inside {
				continue
			}
			if depth == 0 {
				return table.rows, true, nil
			}
			depth--
			table.end(t)
		case xml.CharData:
			if inside && table.inCell && table.inParagraph > 0 && table.annotation == 0 {
				table.cellText.Write(t)
			}
		}
	}
}

func (t *odsTable) start(el xml.StartElement) {
	switch {
	case isElement(el.Name, nsTable, "table-row"):
		t.row = nil
		t.pendingCells = 0
		t.rowRepeat = repeatCount(attr(el, nsTable, "number-rows-repeated"))
	case isElement(el.Name, nsTable, "table-cell"), isElement(el.Name, nsTable, "covered-table-cell"):
		t.inCell = true
		t.cellRepeat = repeatCount(attr(el, nsTable, "number-columns-repeated"))
		t.cellText.Reset()
		t.paragraphs = 0
		t.annotation = 0
		t.cellValue, t.cellTyped = typedCellValue(el)
	case !t.inCell:
	case isElement(el.Name, nsOffice, "annotation"):
		t.annotation++
	case t.annotation > 0:
	case isElement(el.Name, nsText, "p"):
		if t.paragraphs > 0 {
			t.cellText.WriteByte('\n')
		}
		t.paragraphs++
		t.inParagraph++
	case t.inParagraph == 0:
	case isElement(el.Name, nsText, "s"):
		n := 1
		if c := attr(el, nsText, "c"); c != "" {
			if parsed, err := strconv.Atoi(c); err == nil && parsed > 0 {
				n = parsed
			}
		}
		t.cellText.WriteString(strings.Repeat(" ", n))
	case isElement(el.Name, nsText, "tab"):
		t.cellText.WriteByte('\t')
	case isElement(el.Name, nsText, "line-break"):
		t.cellText.WriteByte('\n')
	}
}

func (t *odsTable) end(el xml.EndElement) {
	switch {
	case isElement(el.Name, nsOffice, "annotation"):
		if t.annotation > 0 {
			t.annotation--
		}
	case t.annotation > 0:
	case isElement(el.Name, nsText, "p"):
		if t.inParagraph > 0 {
			t.inParagraph--
		}
	case isElement(el.Name, nsTable, "table-cell"), isElement(el.Name, nsTable, "covered-table-cell"):
		value := t.cellText.String()
		if t.cellTyped {
			value = t.cellValue
		}
		t.appendCell(value, t.cellRepeat)
		t.inCell = false
	case isElement(el.Name, nsTable, "table-row"):
		t.appendRow(t.row, t.rowRepeat)
		t.row = nil
	}
}

func (t *odsTable) appendCell(value string, repeat int) {
	if value == "" {
		t.pendingCells += repeat
		return
	}
	for ; t.pendingCells > 0 && len(t.row) < maxRepeat; t.pendingCells-- {
		t.row = append(t.row, "")
	}
	t.pendingCells = 0
	for i := 0; i < repeat && len(t.row) < maxRepeat; i++ {
		t.row = append(t.row, value)
	}
}

func (t *odsTable) appendRow(row []string, repeat int) {
	if len(row) == 0 {
		t.pendingEmpty += repeat
		return
	}
	for ; t.pendingEmpty > 0 && len(t.rows) < maxRepeat; t.pendingEmpty-- {
		t.rows = append(t.rows, nil)
	}
	t.pendingEmpty = 0
	for i := 0; i < repeat && len(t.rows) < maxRepeat; i++ {
		t.rows = append(t.rows, append([]string(nil), row...))
	}
}

// typedCellValue returns the canonical value of numeric and boolean cells so
// display formatting such as "12.00" does not leak into conditions.
func typedCellValue(el xml.StartElement) (string, bool) {
	switch attr(el, nsOffice, "value-type") {
	case "float", "percentage", "currency":
		raw := attr(el, nsOffice, "value")
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case "boolean":
		switch attr(el, nsOffice, "boolean-value") {
		case "true":
			return "True", true
		case "false":
			return "False", true
		}
	}
	return "", false
}

func repeatCount(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	if n > maxRepeat {
		return maxRepeat
	}
	return n
}

func isElement(name xml.Name, space, local string) bool {
	return name.Space == space && name.Local == local
}

func attr(el xml.StartElement, space, local string) string {
	for _, a := range el.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
