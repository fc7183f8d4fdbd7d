package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks conditions that are not valid expressions.
	ErrSyntax = errors.New("condition syntax error")
	// ErrType marks operations applied to incompatible operand kinds.
	ErrType = errors.New("condition type error")
)

type node interface {
	eval(row []string) (value, error)
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isName(text string) bool {
	tok := p.peek()
	return tok.kind == tokName && tok.text == text
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, syntaxErrorf(tok.pos, "expected %s, found %s", what, tok)
	}
	return tok, nil
}

func (p *parser) parseExpr() (node, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isName("or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isName("and") {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (node, error) {
	if p.isName("not") {
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &notNode{operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	cmp := &compareNode{operands: []node{first}}
	for {
		op, ok := p.comparisonOperator()
		if !ok {
			break
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		cmp.ops = append(cmp.ops, op)
		cmp.operands = append(cmp.operands, operand)
	}
	if len(cmp.ops) == 0 {
		return first, nil
	}
	return cmp, nil
}

func (p *parser) comparisonOperator() (string, bool) {
	tok := p.peek()
	switch {
	case tok.kind == tokOp && (tok.text == "==" || tok.text == "!=" || tok.text == "<" || tok.text == "<=" || tok.text == ">" || tok.text == ">="):
		p.next()
		return tok.text, true
	case tok.kind == tokName && tok.text == "in":
		p.next()
		return "in", true
	case tok.kind == tokName && tok.text == "not" && p.tokens[p.pos+1].kind == tokName && p.tokens[p.pos+1].text == "in":
		p.pos += 2
		return "not in", true
	}
	return "", false
}

func (p *parser) parseUnary() (node, error) {
	tok := p.peek()
	if tok.kind == tokOp && (tok.text == "-" || tok.text == "+") {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &signNode{negate: tok.text == "-", operand: operand, pos: tok.pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokString:
		return &stringNode{raw: tok.text}, nil
	case tokNumber:
		return literalNode{v: value{kind: kindNumber, n: tok.num}}, nil
	case tokPlaceholder:
		return placeholderNode{col: tok.col}, nil
	case tokName:
		switch tok.text {
		case "True", "true":
			return literalNode{v: value{kind: kindBool, b: true}}, nil
		case "False", "false":
			return literalNode{v: value{kind: kindBool}}, nil
		case "None":
			return literalNode{v: value{kind: kindNone}}, nil
		}
		return nil, syntaxErrorf(tok.pos, "unknown name %q", tok.text)
	case tokLParen:
		if p.peek().kind == tokRParen {
			p.next()
			return &listNode{}, nil
		}
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokComma {
			if _, err := p.expect(tokRParen, "')'"); err != nil {
				return nil, err
			}
			return first, nil
		}
		items, err := p.parseItems(first, tokRParen, "')'")
		if err != nil {
			return nil, err
		}
		return &listNode{items: items}, nil
	case tokLBracket:
		if p.peek().kind == tokRBracket {
			p.next()
			return &listNode{}, nil
		}
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items, err := p.parseItems(first, tokRBracket, "']'")
		if err != nil {
			return nil, err
		}
		return &listNode{items: items}, nil
	default:
		return nil, syntaxErrorf(tok.pos, "unexpected %s", tok)
	}
}

// parseItems continues a comma separated sequence after its first element.
// A trailing comma is allowed.
func (p *parser) parseItems(first node, closing tokenKind, what string) ([]node, error) {
	items := []node{first}
	for p.peek().kind == tokComma {
		p.next()
		if p.peek().kind == closing {
			break
		}
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := p.expect(closing, what); err != nil {
		return nil, err
	}
	return items, nil
}

func typeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrType, fmt.Sprintf(format, args...))
}
