package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies an Error.
type Category int

const (
	// Syntax means the input does not match the grammar.
	Syntax Category = iota
	// Arity means a rule matched with fewer children than required.
	Arity
	// Semantic means the input is well-formed but invalid (bad header,
	// premise out of sequence, ...).
	Semantic
	// Internal means the grammar and its consumers disagree. It is a bug,
	// never the user's fault.
	Internal
)

func (c Category) String() string {
	switch c {
	case Syntax:
		return "syntax error"
	case Arity:
		return "arity error"
	case Semantic:
		return "validation error"
	case Internal:
		return "internal error"
	}
	return fmt.Sprintf("error(%d)", int(c))
}

// Error is a span-aware translation failure.
type Error struct {
	Category Category
	Rule     Kind // rule being processed, empty when unknown
	Span     Span
	Msg      string
	Err      error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Span.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an Error located at span.
func Errorf(cat Category, span Span, format string, args ...any) *Error {
	return &Error{Category: cat, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// NodeErrorf builds an Error located at n and tagged with its rule.
func NodeErrorf(cat Category, n *Node, format string, args ...any) *Error {
	return &Error{Category: cat, Rule: n.Kind, Span: n.Span, Msg: fmt.Sprintf(format, args...)}
}

// CategoryOf reports the category of err if it wraps an *Error.
func CategoryOf(err error) (Category, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Category, true
	}
	return 0, false
}

// IsInternal reports whether err is a grammar/consumer invariant violation.
func IsInternal(err error) bool {
	cat, ok := CategoryOf(err)
	return ok && cat == Internal
}

// Annotate returns err with a caret snippet of src pointing at the error
// location. Errors that are not *Error, or carry no location, are returned
// unchanged.
//
//	syntax error at 3:8: expected ')', found end of line
//
//	   2 | 1: P -> Q
//	   3 | 2: (P ^ Q
//	     |         ^
//	   4 | :. Q
func Annotate(err error, src string) error {
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Span.Line == 0 {
		return err
	}
	return &annotated{
		err:     err,
		snippet: snippet(src, gerr.Category.String(), gerr.Span.Line, gerr.Span.Column, gerr.Msg),
	}
}

type annotated struct {
	err     error
	snippet string
}

func (a *annotated) Error() string { return a.snippet }
func (a *annotated) Unwrap() error { return a.err }

// snippet shows at most one line of context on each side of the error line.
// Line and column are clamped to the source bounds.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)

	width := len(fmt.Sprint(min(line+1, len(lines))))
	writeLine := func(n int) {
		fmt.Fprintf(&b, "  %*d | %s\n", width, n, strings.TrimRight(lines[n-1], "\r"))
	}

	if line > 1 {
		writeLine(line - 1)
	}
	writeLine(line)
	fmt.Fprintf(&b, "  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", col-1))
	if line < len(lines) {
		writeLine(line + 1)
	}
	return strings.TrimRight(b.String(), "\n")
}
