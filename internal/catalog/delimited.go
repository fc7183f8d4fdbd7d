package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var encodingAliases = map[string]string{
	"latin1": "iso88591",
	"latin9": "iso885915",
	"cp1252": "windows1252",
	"cp1250": "windows1250",
	"cp850":  "ibmcodepage850",
	"cp437":  "ibmcodepage437",
}

// lookupEncoding resolves a charset name against the single-byte charmaps.
// UTF-8 and the empty name return nil.
func lookupEncoding(name string) (encoding.Encoding, error) {
	key := canonicalCharset(name)
	switch key {
	case "", "utf8":
		return nil, nil
	}
	if alias, ok := encodingAliases[key]; ok {
		key = alias
	}
	for _, enc := range charmap.All {
		cm, ok := enc.(*charmap.Charmap)
		if !ok {
			continue
		}
		if canonicalCharset(cm.String()) == key {
			return cm, nil
		}
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

func canonicalCharset(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func readDelimited(path string, comma rune, charset string) ([][]string, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	var src io.Reader = file
	if enc != nil {
		src = enc.NewDecoder().Reader(file)
	} else {
		buffered := bufio.NewReader(file)
		if bom, err := buffered.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
			_, _ = buffered.Discard(3)
		}
		src = buffered
	}

	reader := csv.NewReader(src)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return rows, nil
}
