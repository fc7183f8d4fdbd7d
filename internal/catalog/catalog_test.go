package catalog

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

const odsContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content
 xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
 xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:spreadsheet>
<table:table table:name="Notes">
 <table:table-row><table:table-cell office:value-type="string"><text:p>ignored</text:p></table:table-cell></table:table-row>
</table:table>
<table:table table:name="Episodes">
 <table:table-column table:number-columns-repeated="3"/>
 <table:table-row>
  <table:table-cell office:value-type="string"><text:p>No</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Subtitle</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Seen</text:p></table:table-cell>
 </table:table-row>
 <table:table-row>
  <table:table-cell office:value-type="float" office:value="1"><text:p>1.00</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><office:annotation><text:p>note</text:p></office:annotation><text:p>Der<text:s text:c="2"/>Anfang</text:p></table:table-cell>
  <table:table-cell office:value-type="boolean" office:boolean-value="true"><text:p>TRUE</text:p></table:table-cell>
  <table:table-cell table:number-columns-repeated="1020"/>
 </table:table-row>
 <table:table-row table:number-rows-repeated="2">
  <table:table-cell table:number-columns-repeated="2"/>
  <table:table-cell office:value-type="string"><text:p>x</text:p></table:table-cell>
 </table:table-row>
 <table:table-row table:number-rows-repeated="1048000">
  <table:table-cell table:number-columns-repeated="1024"/>
 </table:table-row>
</table:table>
</office:spreadsheet></office:body>
</office:document-content>`

func writeODS(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.ods")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	zw := zip.NewWriter(file)
	w, err := zw.Create("mimetype")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("application/vnd.oasis.opendocument.spreadsheet")); err != nil {
		t.Fatal(err)
	}
	w, err = zw.Create("content.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(odsContent)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSheetODS(t *testing.T) {
	path := writeODS(t, t.TempDir())

	rows, err := ReadSheet(path, Options{Sheet: "Episodes"})
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}
	want := [][]string{
		{"No", "Subtitle", "Seen"},
		{"1", "Der  Anfang", "True"},
		{"", "", "x"},
		{"", "", "x"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
}

func TestReadSheetODSFirstSheetByDefault(t *testing.T) {
	path := writeODS(t, t.TempDir())
	rows, err := ReadSheet(path, Options{})
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}
	if want := [][]string{{"ignored"}}; !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
}

func TestReadSheetODSMissingSheet(t *testing.T) {
	path := writeODS(t, t.TempDir())
	if _, err := ReadSheet(path, Options{Sheet: "Nope"}); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestSheetNamesODS(t *testing.T) {
	path := writeODS(t, t.TempDir())
	names, err := SheetNames(path)
	if err != nil {
		t.Fatalf("SheetNames: %v", err)
	}
	if want := []string{"Notes", "Episodes"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestReadSheetXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	f := excelize.NewFile()
	if _, err := f.NewSheet("Episodes"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("Episodes", "A1", &[]any{"No", "Subtitle"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("Episodes", "A2", &[]any{1, "Der Anfang"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("Episodes", "B4", &[]any{"Finale"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadSheet(path, Options{Sheet: "Episodes"})
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}
	want := [][]string{
		{"No", "Subtitle"},
		{"1", "Der Anfang"},
		{},
		{"", "Finale"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
	for i := range want {
		if len(rows[i]) != len(want[i]) || (len(want[i]) > 0 && !reflect.DeepEqual(rows[i], want[i])) {
			t.Fatalf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}

	if _, err := ReadSheet(path, Options{Sheet: "Missing"}); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}

	names, err := SheetNames(path)
	if err != nil {
		t.Fatalf("SheetNames: %v", err)
	}
	if want := []string{"Sheet1", "Episodes"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestReadSheetCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	content := "\xef\xbb\xbfNo,Subtitle\n1,\"Folge 1: Anfang\"\n2,Ende,,\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadSheet(path, Options{Sheet: "ignored"})
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}
	want := [][]string{{"No", "Subtitle"}, {"1", "Folge 1: Anfang"}, {"2", "Ende"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
}

func TestReadSheetCSVLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.tsv")
	// "Fräulein" in ISO 8859-1.
	if err := os.WriteFile(path, []byte("1\tFr\xe4ulein\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rows, err := ReadSheet(path, Options{Encoding: "latin1"})
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}
	if want := [][]string{{"1", "Fräulein"}}; !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8"} {
		if enc, err := lookupEncoding(name); err != nil || enc != nil {
			t.Errorf("lookupEncoding(%q) = %v, %v; want nil, nil", name, enc, err)
		}
	}
	for _, name := range []string{"latin1", "ISO-8859-15", "windows-1252", "cp1252", "cp850"} {
		if enc, err := lookupEncoding(name); err != nil || enc == nil {
			t.Errorf("lookupEncoding(%q) = %v, %v; want encoding", name, enc, err)
		}
	}
	if _, err := lookupEncoding("klingon"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestReadSheetUnsupported(t *testing.T) {
	if _, err := ReadSheet("catalog.pdf", Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTrimRows(t *testing.T) {
	rows := trimRows([][]string{{"a", "", ""}, {"", ""}, {"b"}, {}, {""}})
	want := [][]string{{"a"}, {}, {"b"}}
	if len(rows) != len(want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
	for i := range want {
		if len(rows[i]) != len(want[i]) {
			t.Fatalf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}
