// Package latex turns parse-tree nodes into LaTeX fragments built from the
// \argument, \conclusion and \pred macros.
package latex

import (
	"strconv"
	"strings"

	"github.com/dgallion1/argtex/internal/grammar"
)

// Emit translates n into a LaTeX fragment. Premises (arg nodes) are checked
// against and advance num.
//
// Fragments that need no translation are returned as substrings of the
// source; new strings are only built for escaping, wrapping and joining.
func Emit(n *grammar.Node, num *Numbering) (string, error) {
	switch n.Kind {
	case grammar.KindExistencial:
		switch n.Text {
		case "@":
			return `\forall `, nil
		case "&":
			return `\exists `, nil
		}
		return "", grammar.NodeErrorf(grammar.Internal, n, "unknown quantifier %q", n.Text)

	case grammar.KindArg:
		return emitArg(n, num)

	case grammar.KindLineExt:
		return n.Text, nil

	case grammar.KindBioperator:
		switch n.Text {
		case "->":
			return `\rightarrow `, nil
		case "^":
			return `\land `, nil
		case "V", "v":
			return `\lor `, nil
		}
		return "", grammar.NodeErrorf(grammar.Internal, n, "unknown operator %q", n.Text)

	case grammar.KindNeg:
		inner, err := emitOnly(n, num, "neg params")
		if err != nil {
			return "", err
		}
		return `\lnot ` + inner, nil

	case grammar.KindConclusion:
		inner, err := emitOnly(n, num, "conclusion args")
		if err != nil {
			return "", err
		}
		return `\conclusion{` + inner + `}`, nil

	case grammar.KindSubexpr:
		inner, err := emitOnly(n, num, "subexpr params")
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case grammar.KindOperand:
		return escapeUnderscores(n.Text), nil

	case grammar.KindFunc:
		return emitFunc(n, num)

	case grammar.KindHeader, grammar.KindHeaderLine, grammar.KindHeaderKey, grammar.KindHeaderValue:
		return "", grammar.NodeErrorf(grammar.Internal, n, "unexpected rule %s in formula", n.Kind)
	}
	return emitChildren(n, num)
}

func emitArg(n *grammar.Node, num *Numbering) (string, error) {
	required, rest, err := grammar.ExtractExcess(n, 2, "arg params")
	if err != nil {
		return "", err
	}
	numberNode, formulaNode := required[0], required[1]

	number, err := strconv.ParseUint(numberNode.Text, 10, 16)
	if err != nil {
		e := grammar.NodeErrorf(grammar.Semantic, numberNode, "invalid exercise number %q", numberNode.Text)
		e.Err = err
		return "", e
	}
	if err := num.Advance(uint16(number)); err != nil {
		e := grammar.NodeErrorf(grammar.Semantic, n, "%s", err)
		e.Err = err
		return "", e
	}

	formula, err := Emit(formulaNode, num)
	if err != nil {
		return "", err
	}

	switch len(rest) {
	case 0:
		return `\argument{` + formula + `}`, nil
	case 1:
		just, err := Emit(rest[0], num)
		if err != nil {
			return "", err
		}
		return `\argument[` + just + `]{` + formula + `}`, nil
	}
	return "", grammar.NodeErrorf(grammar.Internal, n, "expected at most one justification, got %d", len(rest))
}

func emitFunc(n *grammar.Node, num *Numbering) (string, error) {
	required, _, err := grammar.ExtractExcess(n, 2, "func params")
	if err != nil {
		return "", err
	}
	nameNode, argsNode := required[0], required[1]

	name, err := Emit(nameNode, num)
	if err != nil {
		return "", err
	}
	args := make([]string, 0, len(argsNode.Children))
	for _, a := range argsNode.Children {
		s, err := Emit(a, num)
		if err != nil {
			return "", err
		}
		args = append(args, s)
	}
	return `\pred{` + name + `}{` + strings.Join(args, ", ") + `}`, nil
}

// emitOnly emits the single child of a unary rule.
func emitOnly(n *grammar.Node, num *Numbering, msg string) (string, error) {
	kids, err := grammar.Extract(n, 1, msg)
	if err != nil {
		return "", err
	}
	return Emit(kids[0], num)
}

// emitChildren is the fallback for grouping rules: children are emitted
// and concatenated with no separator.
func emitChildren(n *grammar.Node, num *Numbering) (string, error) {
	switch len(n.Children) {
	case 0:
		return "", nil
	case 1:
		return Emit(n.Children[0], num)
	}
	var b strings.Builder
	for _, c := range n.Children {
		s, err := Emit(c, num)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// escapeUnderscores returns s itself when there is nothing to escape.
func escapeUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}
