package expr

import (
	"regexp"
	"strconv"
	"strings"
)

type valueKind int

const (
	kindNone valueKind = iota
	kindBool
	kindNumber
	kindString
	kindList
)

func (k valueKind) String() string {
	switch k {
	case kindNone:
		return "None"
	case kindBool:
		return "bool"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	default:
		return "list"
	}
}

type value struct {
	kind valueKind
	b    bool
	n    float64
	s    string
	list []value
}

var numericCellPattern = regexp.MustCompile(`^\s*[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?\s*$`)

// cellValue converts a row cell for a bare placeholder.
func cellValue(cell string) value {
	if numericCellPattern.MatchString(cell) {
		if n, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return value{kind: kindNumber, n: n}
		}
	}
	return value{kind: kindString, s: cell}
}

func (v value) truthy() bool {
	switch v.kind {
	case kindBool:
		return v.b
	case kindNumber:
		return v.n != 0
	case kindString:
		return v.s != ""
	case kindList:
		return len(v.list) > 0
	default:
		return false
	}
}

// numeric reports the value as a number; booleans count as 0 and 1.
func (v value) numeric() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.n, true
	case kindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func equal(a, b value) bool {
	if an, ok := a.numeric(); ok {
		bn, ok := b.numeric()
		return ok && an == bn
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case kindNone:
		return true
	case kindString:
		return a.s == b.s
	case kindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// compare orders two values of compatible kind.
func compare(a, b value) (int, bool) {
	if an, ok := a.numeric(); ok {
		bn, ok := b.numeric()
		if !ok {
			return 0, false
		}
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.kind == kindString && b.kind == kindString {
		return strings.Compare(a.s, b.s), true
	}
	return 0, false
}

func contains(container, item value) (bool, bool) {
	switch container.kind {
	case kindString:
		if item.kind != kindString {
			return false, false
		}
		return strings.Contains(container.s, item.s), true
	case kindList:
		for _, elem := range container.list {
			if equal(elem, item) {
				return true, true
			}
		}
		return false, true
	default:
		return false, false
	}
}
