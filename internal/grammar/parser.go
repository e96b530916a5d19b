package grammar

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Parse recognises a complete document and returns its root node.
//
// The root's first child is always a header; the rest are labels, premises
// (arg) and conclusions in source order. Failures are *Error values of
// category Syntax.
func Parse(input string) (*Node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, &Error{Category: Syntax, Msg: err.Error(), Err: err}
	}
	return newParser(input, tokens).root()
}

type parser struct {
	src        string
	tokens     []lexer.Token
	pos        int
	lineStarts []int
}

func newParser(src string, tokens []lexer.Token) *parser {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &parser{src: src, tokens: tokens, lineStarts: starts}
}

func (p *parser) root() (*Node, error) {
	p.skipBlank()
	header, err := p.header()
	if err != nil {
		return nil, err
	}

	children := []*Node{header}
	for {
		p.skipBlank()
		tok := p.peek()

		var n *Node
		switch {
		case tok.EOF():
			return p.node(KindRoot, 0, len(p.src), children...), nil
		case tok.Type == tokNumber:
			n, err = p.arg()
		case tok.Type == tokTherefore:
			n, err = p.conclusion()
		case isPunct(tok, "#"):
			n, err = p.label()
		default:
			return nil, p.unexpected(tok, "a label, premise or conclusion")
		}
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
}

// header = "[" label_text "]" NL { header_line }
func (p *parser) header() (*Node, error) {
	open := p.peek()
	if !isPunct(open, "[") {
		return nil, p.unexpected(open, "'[config]' header")
	}
	label, err := p.bracketed(KindLabel, KindLabelText)
	if err != nil {
		return nil, err
	}
	end := p.lastEnd()
	if err := p.endLine(); err != nil {
		return nil, err
	}

	children := []*Node{label}
	for {
		p.skipBlank()
		if !p.atHeaderLine() {
			break
		}
		line, err := p.headerLine()
		if err != nil {
			return nil, err
		}
		children = append(children, line)
		end = line.Span.End
	}
	return p.node(KindHeader, p.start(open), end, children...), nil
}

func (p *parser) atHeaderLine() bool {
	if p.peek().Type != tokIdent || p.pos+1 >= len(p.tokens) {
		return false
	}
	colon := p.tokens[p.pos+1]
	return isPunct(colon, ":") || colon.Type == tokTherefore
}

// header_line = header_key ":" header_value NL
func (p *parser) headerLine() (*Node, error) {
	key := p.next()
	colon := p.next()
	from := p.start(colon) + 1
	p.skipToLineEnd()
	to := p.start(p.peek())

	keyNode := p.node(KindHeaderKey, p.start(key), p.end(key))
	valueNode := p.node(KindHeaderValue, from, to)
	line := p.node(KindHeaderLine, p.start(key), to, keyNode, valueNode)
	return line, p.endLine()
}

// label = "#" label_text NL
func (p *parser) label() (*Node, error) {
	hash := p.next()
	p.skipToLineEnd()
	start, end := p.trim(p.end(hash), p.start(p.peek()))
	text := p.node(KindLabelText, start, end)
	return p.node(KindLabel, start, end, text), p.endLine()
}

// arg = Number ":" formula [ justification ] NL
func (p *parser) arg() (*Node, error) {
	num := p.next()
	if colon := p.peek(); !isPunct(colon, ":") {
		return nil, p.unexpected(colon, "':' after premise number")
	}
	p.next()

	formula, err := p.formula()
	if err != nil {
		return nil, err
	}
	children := []*Node{p.node(KindNumber, p.start(num), p.end(num)), formula}

	if isPunct(p.peek(), "[") {
		just, err := p.bracketed(KindJustification, KindLineExt)
		if err != nil {
			return nil, err
		}
		children = append(children, just)
	}

	end := p.lastEnd()
	if err := p.endLine(); err != nil {
		return nil, err
	}
	return p.node(KindArg, p.start(num), end, children...), nil
}

// conclusion = ":." formula NL
func (p *parser) conclusion() (*Node, error) {
	marker := p.next()
	formula, err := p.formula()
	if err != nil {
		return nil, err
	}
	end := p.lastEnd()
	if err := p.endLine(); err != nil {
		return nil, err
	}
	return p.node(KindConclusion, p.start(marker), end, formula), nil
}

// formula = term { bioperator term }
func (p *parser) formula() (*Node, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	children := []*Node{first}
	for isBioperator(p.peek()) {
		op := p.next()
		children = append(children, p.node(KindBioperator, p.start(op), p.end(op)))
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		children = append(children, t)
	}
	last := children[len(children)-1]
	return p.node(KindFormula, first.Span.Start, last.Span.End, children...), nil
}

// term = neg | quantified | subexpr | func | operand | line_ext
func (p *parser) term() (*Node, error) {
	tok := p.peek()
	switch {
	case tok.Type == tokNot:
		p.next()
		inner, err := p.term()
		if err != nil {
			return nil, err
		}
		return p.node(KindNeg, p.start(tok), inner.Span.End, inner), nil

	case tok.Type == tokQuantifier:
		p.next()
		quant := p.node(KindExistencial, p.start(tok), p.end(tok))
		v := p.peek()
		if v.Type != tokIdent && v.Type != tokNumber {
			return nil, p.unexpected(v, "a variable after quantifier")
		}
		p.next()
		variable := p.node(KindOperand, p.start(v), p.end(v))
		body, err := p.term()
		if err != nil {
			return nil, err
		}
		return p.node(KindQuantified, quant.Span.Start, body.Span.End, quant, variable, body), nil

	case isPunct(tok, "("):
		p.next()
		inner, err := p.formula()
		if err != nil {
			return nil, err
		}
		closing := p.peek()
		if !isPunct(closing, ")") {
			return nil, p.unexpected(closing, "')'")
		}
		p.next()
		return p.node(KindSubexpr, p.start(tok), p.end(closing), inner), nil

	case tok.Type == tokIdent || tok.Type == tokNumber:
		p.next()
		name := p.node(KindOperand, p.start(tok), p.end(tok))
		// A predicate application needs the parenthesis glued to its name,
		// otherwise "@x (P)" would read x as a predicate.
		if open := p.peek(); isPunct(open, "(") && p.start(open) == p.end(tok) {
			return p.application(name)
		}
		return name, nil

	case tok.Type == tokCommand:
		p.next()
		return p.node(KindLineExt, p.start(tok), p.end(tok)), nil

	case tok.Type == tokRaw:
		p.next()
		n := p.node(KindLineExt, p.start(tok), p.end(tok))
		n.Text = tok.Value[1 : len(tok.Value)-1]
		return n, nil
	}
	return nil, p.unexpected(tok, "a formula")
}

// func = operand "(" [ formula { "," formula } ] ")"
func (p *parser) application(name *Node) (*Node, error) {
	open := p.next()
	var args []*Node
	if !isPunct(p.peek(), ")") {
		for {
			arg, err := p.formula()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !isPunct(p.peek(), ",") {
				break
			}
			p.next()
		}
	}
	closing := p.peek()
	if !isPunct(closing, ")") {
		return nil, p.unexpected(closing, "',' or ')'")
	}
	p.next()

	argsNode := p.node(KindArgs, p.end(open), p.start(closing), args...)
	return p.node(KindFunc, name.Span.Start, p.end(closing), name, argsNode), nil
}

// bracketed reads "[" text "]" on a single line into a node of kind outer
// wrapping one leaf of kind inner. Both cover the trimmed text.
func (p *parser) bracketed(outer, inner Kind) (*Node, error) {
	open := p.next()
	for tok := p.peek(); !atLineEnd(tok) && !isPunct(tok, "]"); tok = p.peek() {
		p.next()
	}
	closing := p.peek()
	if !isPunct(closing, "]") {
		return nil, p.unexpected(closing, "']'")
	}
	start, end := p.trim(p.end(open), p.start(closing))
	p.next()
	leaf := p.node(inner, start, end)
	return p.node(outer, start, end, leaf), nil
}

func (p *parser) node(kind Kind, start, end int, children ...*Node) *Node {
	return &Node{
		Kind:     kind,
		Text:     p.src[start:end],
		Span:     p.span(start, end),
		Children: children,
	}
}

func (p *parser) span(start, end int) Span {
	line := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > start })
	col := utf8.RuneCountInString(p.src[p.lineStarts[line-1]:start]) + 1
	return Span{Start: start, End: end, Line: line, Column: col}
}

func (p *parser) trim(from, to int) (start, end int) {
	raw := p.src[from:to]
	start = from + len(raw) - len(strings.TrimLeft(raw, " \t"))
	end = from + len(strings.TrimRight(raw, " \t\r"))
	if end < start {
		end = start
	}
	return start, end
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if !tok.EOF() {
		p.pos++
	}
	return tok
}

func (p *parser) start(tok lexer.Token) int {
	if tok.EOF() {
		return len(p.src)
	}
	return tok.Pos.Offset
}

func (p *parser) end(tok lexer.Token) int {
	return p.start(tok) + len(tok.Value)
}

// lastEnd is the end offset of the most recently consumed token.
func (p *parser) lastEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.end(p.tokens[p.pos-1])
}

func (p *parser) skipBlank() {
	for p.peek().Type == tokNewline {
		p.next()
	}
}

func (p *parser) skipToLineEnd() {
	for !atLineEnd(p.peek()) {
		p.next()
	}
}

func (p *parser) endLine() error {
	tok := p.peek()
	if !atLineEnd(tok) {
		return p.unexpected(tok, "end of line")
	}
	p.next()
	return nil
}

func (p *parser) unexpected(tok lexer.Token, expected string) *Error {
	return Errorf(Syntax, p.span(p.start(tok), p.end(tok)), "expected %s, found %s", expected, describe(tok))
}

func describe(tok lexer.Token) string {
	switch {
	case tok.EOF():
		return "end of input"
	case tok.Type == tokNewline:
		return "end of line"
	}
	return fmt.Sprintf("%q", tok.Value)
}

func atLineEnd(tok lexer.Token) bool {
	return tok.EOF() || tok.Type == tokNewline
}

func isPunct(tok lexer.Token, value string) bool {
	return tok.Type == tokPunct && tok.Value == value
}

func isBioperator(tok lexer.Token) bool {
	return tok.Type == tokArrow || tok.Type == tokAnd || tok.Type == tokOr
}
