package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokNumber
	tokPlaceholder
	tokName
	tokOp
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	col  int
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return strconv.Quote(t.text)
	default:
		return t.text
	}
}

func tokenize(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '\'' || r == '"':
			text, next, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, text: text, pos: i})
			i = next
		case r == '$':
			j := i + 1
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			if j == i+1 {
				return nil, syntaxErrorf(i, "expected column number after '$'")
			}
			col, err := strconv.Atoi(src[i+1 : j])
			if err != nil {
				return nil, syntaxErrorf(i, "column number %q: %v", src[i+1:j], err)
			}
			tokens = append(tokens, token{kind: tokPlaceholder, text: src[i:j], col: col, pos: i})
			i = j
		case (r >= '0' && r <= '9') || (r == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := scanNumber(src, i)
			num, err := strconv.ParseFloat(src[i:j], 64)
			if err != nil {
				return nil, syntaxErrorf(i, "invalid number %q", src[i:j])
			}
			tokens = append(tokens, token{kind: tokNumber, text: src[i:j], num: num, pos: i})
			i = j
		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(src) {
				r2, s2 := utf8.DecodeRuneInString(src[j:])
				if r2 != '_' && !unicode.IsLetter(r2) && !unicode.IsDigit(r2) {
					break
				}
				j += s2
			}
			tokens = append(tokens, token{kind: tokName, text: src[i:j], pos: i})
			i = j
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		case r == '[':
			tokens = append(tokens, token{kind: tokLBracket, text: "[", pos: i})
			i++
		case r == ']':
			tokens = append(tokens, token{kind: tokRBracket, text: "]", pos: i})
			i++
		case r == ',':
			tokens = append(tokens, token{kind: tokComma, text: ",", pos: i})
			i++
		default:
			op := scanOperator(src[i:])
			if op == "" {
				return nil, syntaxErrorf(i, "unexpected character %q", r)
			}
			tokens = append(tokens, token{kind: tokOp, text: op, pos: i})
			i += len(op)
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})
	return tokens, nil
}

func scanOperator(s string) string {
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">", "-", "+"} {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func scanNumber(src string, i int) int {
	j := i
	for j < len(src) && isDigit(src[j]) {
		j++
	}
	if j < len(src) && src[j] == '.' {
		j++
		for j < len(src) && isDigit(src[j]) {
			j++
		}
	}
	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		if k < len(src) && isDigit(src[k]) {
			for k < len(src) && isDigit(src[k]) {
				k++
			}
			j = k
		}
	}
	return j
}

func scanString(src string, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(src):
			switch next := src[i+1]; next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(next)
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, syntaxErrorf(start, "unterminated string")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, pos, fmt.Sprintf(format, args...))
}
