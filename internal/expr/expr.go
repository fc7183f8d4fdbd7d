package expr

import (
	"strconv"
	"strings"
)

// Expr is a compiled condition.
type Expr struct {
	src  string
	root node
}

// Compile parses src. An empty or blank source compiles to a condition that
// is always true.
func Compile(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return &Expr{src: src}, nil
	}
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, syntaxErrorf(tok.pos, "unexpected %s", tok)
	}
	return &Expr{src: src, root: root}, nil
}

// String returns the source the expression was compiled from.
func (e *Expr) String() string {
	return e.src
}

// Eval evaluates the condition against row and reports its truthiness.
func (e *Expr) Eval(row []string) (bool, error) {
	if e == nil || e.root == nil {
		return true, nil
	}
	v, err := e.root.eval(row)
	if err != nil {
		return false, err
	}
	return v.truthy(), nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

type literalNode struct {
	v value
}

func (n literalNode) eval([]string) (value, error) {
	return n.v, nil
}

type placeholderNode struct {
	col int
}

func (n placeholderNode) eval(row []string) (value, error) {
	return cellValue(cell(row, n.col)), nil
}

// stringNode is a quoted literal whose $N references are replaced by cell
// text at evaluation time.
type stringNode struct {
	raw string
}

func (n *stringNode) eval(row []string) (value, error) {
	if !strings.Contains(n.raw, "$") {
		return value{kind: kindString, s: n.raw}, nil
	}
	var b strings.Builder
	s := n.raw
	for {
		idx := strings.IndexByte(s, '$')
		if idx < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:idx])
		j := idx + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == idx+1 {
			b.WriteByte('$')
			s = s[idx+1:]
			continue
		}
		col, err := strconv.Atoi(s[idx+1 : j])
		if err != nil {
			b.WriteString(s[idx:j])
		} else {
			b.WriteString(cell(row, col))
		}
		s = s[j:]
	}
	return value{kind: kindString, s: b.String()}, nil
}

type listNode struct {
	items []node
}

func (n *listNode) eval(row []string) (value, error) {
	out := value{kind: kindList, list: make([]value, 0, len(n.items))}
	for _, item := range n.items {
		v, err := item.eval(row)
		if err != nil {
			return value{}, err
		}
		out.list = append(out.list, v)
	}
	return out, nil
}

type signNode struct {
	negate  bool
	operand node
	pos     int
}

func (n *signNode) eval(row []string) (value, error) {
	v, err := n.operand.eval(row)
	if err != nil {
		return value{}, err
	}
	num, ok := v.numeric()
	if !ok {
		return value{}, typeErrorf("bad operand type for unary sign at offset %d: %s", n.pos, v.kind)
	}
	if n.negate {
		num = -num
	}
	return value{kind: kindNumber, n: num}, nil
}

type notNode struct {
	operand node
}

func (n *notNode) eval(row []string) (value, error) {
	v, err := n.operand.eval(row)
	if err != nil {
		return value{}, err
	}
	return value{kind: kindBool, b: !v.truthy()}, nil
}

// andNode and orNode short-circuit and yield the deciding operand.
type andNode struct {
	left, right node
}

func (n *andNode) eval(row []string) (value, error) {
	l, err := n.left.eval(row)
	if err != nil || !l.truthy() {
		return l, err
	}
	return n.right.eval(row)
}

type orNode struct {
	left, right node
}

func (n *orNode) eval(row []string) (value, error) {
	l, err := n.left.eval(row)
	if err != nil || l.truthy() {
		return l, err
	}
	return n.right.eval(row)
}

// compareNode evaluates a chain like a < b <= c as (a < b) and (b <= c).
type compareNode struct {
	operands []node
	ops      []string
}

func (n *compareNode) eval(row []string) (value, error) {
	left, err := n.operands[0].eval(row)
	if err != nil {
		return value{}, err
	}
	for i, op := range n.ops {
		right, err := n.operands[i+1].eval(row)
		if err != nil {
			return value{}, err
		}
		ok, err := applyComparison(op, left, right)
		if err != nil {
			return value{}, err
		}
		if !ok {
			return value{kind: kindBool}, nil
		}
		left = right
	}
	return value{kind: kindBool, b: true}, nil
}

func applyComparison(op string, left, right value) (bool, error) {
	switch op {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "in", "not in":
		found, ok := contains(right, left)
		if !ok {
			return false, typeErrorf("cannot test %s in %s", left.kind, right.kind)
		}
		if op == "not in" {
			return !found, nil
		}
		return found, nil
	}
	c, ok := compare(left, right)
	if !ok {
		return false, typeErrorf("'%s' not supported between %s and %s", op, left.kind, right.kind)
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}
