package grammar

import (
	"errors"
	"strings"
	"testing"
)

const sample = `[config]
title: Logic
author: Ann
date: today

# Modus ponens
1: P -> Q
2: P
:. Q
`

func kinds(nodes []*Node) []Kind {
	out := make([]Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func equalKinds(got, want []Kind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// parseFormula parses a one-premise document and returns the premise's formula node.
func parseFormula(t *testing.T, formula string) *Node {
	t.Helper()
	root, err := Parse("[config]\n1: " + formula + "\n")
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", formula, err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected header and one premise, got %v", kinds(root.Children))
	}
	arg := root.Children[1]
	if len(arg.Children) < 2 {
		t.Fatalf("expected premise with at least 2 children, got %d", len(arg.Children))
	}
	return arg.Children[1]
}

func TestParse_DocumentStructure(t *testing.T) {
	root, err := Parse(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != KindRoot {
		t.Fatalf("expected root, got %s", root.Kind)
	}

	want := []Kind{KindHeader, KindLabel, KindArg, KindArg, KindConclusion}
	if got := kinds(root.Children); !equalKinds(got, want) {
		t.Fatalf("expected children %v, got %v", want, got)
	}

	label := root.Children[1]
	if label.Text != "Modus ponens" {
		t.Errorf("expected label %q, got %q", "Modus ponens", label.Text)
	}

	arg := root.Children[2]
	if arg.Text != "1: P -> Q" {
		t.Errorf("expected arg text %q, got %q", "1: P -> Q", arg.Text)
	}
	if arg.Span.Line != 7 || arg.Span.Column != 1 {
		t.Errorf("expected arg at 7:1, got %d:%d", arg.Span.Line, arg.Span.Column)
	}
	if arg.Children[0].Kind != KindNumber || arg.Children[0].Text != "1" {
		t.Errorf("expected number %q, got %s %q", "1", arg.Children[0].Kind, arg.Children[0].Text)
	}

	formula := arg.Children[1]
	wantFormula := []Kind{KindOperand, KindBioperator, KindOperand}
	if got := kinds(formula.Children); !equalKinds(got, wantFormula) {
		t.Errorf("expected formula children %v, got %v", wantFormula, got)
	}

	conclusion := root.Children[4]
	if conclusion.Text != ":. Q" {
		t.Errorf("expected conclusion text %q, got %q", ":. Q", conclusion.Text)
	}
	if len(conclusion.Children) != 1 {
		t.Errorf("expected conclusion with 1 child, got %d", len(conclusion.Children))
	}
}

func TestParse_Header(t *testing.T) {
	root, err := Parse(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header := root.Children[0]

	want := []Kind{KindLabel, KindHeaderLine, KindHeaderLine, KindHeaderLine}
	if got := kinds(header.Children); !equalKinds(got, want) {
		t.Fatalf("expected header children %v, got %v", want, got)
	}

	label := header.Children[0]
	if len(label.Children) != 1 || label.Children[0].Text != "config" {
		t.Fatalf("expected config label with a single child, got %+v", label)
	}

	line := header.Children[1]
	if len(line.Children) != 2 {
		t.Fatalf("expected header line with 2 children, got %d", len(line.Children))
	}
	if line.Children[0].Kind != KindHeaderKey || line.Children[0].Text != "title" {
		t.Errorf("expected key %q, got %s %q", "title", line.Children[0].Kind, line.Children[0].Text)
	}
	if line.Children[1].Kind != KindHeaderValue || line.Children[1].Text != " Logic" {
		t.Errorf("expected raw value %q, got %s %q", " Logic", line.Children[1].Kind, line.Children[1].Text)
	}
}

func TestParse_HeaderValueKeepsArbitraryText(t *testing.T) {
	root, err := Parse("[config]\ntitle: Ann & Bob's notes: (v2) %\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value := root.Children[0].Children[1].Children[1]
	if value.Text != " Ann & Bob's notes: (v2) %" {
		t.Errorf("expected raw value, got %q", value.Text)
	}
}

func TestParse_HeaderLabelIsNotValidated(t *testing.T) {
	root, err := Parse("[ settings ]\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	label := root.Children[0].Children[0]
	if label.Children[0].Text != "settings" {
		t.Errorf("expected trimmed label %q, got %q", "settings", label.Children[0].Text)
	}
}

func TestParse_Justification(t *testing.T) {
	root, err := Parse("[config]\n1: P -> Q [ modus ponens ]\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arg := root.Children[1]
	if len(arg.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(arg.Children))
	}
	just := arg.Children[2]
	if just.Kind != KindJustification || just.Text != "modus ponens" {
		t.Errorf("expected justification %q, got %s %q", "modus ponens", just.Kind, just.Text)
	}
	if len(just.Children) != 1 || just.Children[0].Kind != KindLineExt {
		t.Errorf("expected a single line_ext child, got %v", kinds(just.Children))
	}
	if arg.Text != "1: P -> Q [ modus ponens ]" {
		t.Errorf("expected arg to span the closing bracket, got %q", arg.Text)
	}
}

func TestParse_QuantifierWithSubexpression(t *testing.T) {
	formula := parseFormula(t, "@x (Man(x) -> Mortal(x))")

	quantified := formula.Children[0]
	want := []Kind{KindExistencial, KindOperand, KindSubexpr}
	if got := kinds(quantified.Children); !equalKinds(got, want) {
		t.Fatalf("expected quantified children %v, got %v", want, got)
	}
	if quantified.Children[1].Text != "x" {
		t.Errorf("expected bound variable %q, got %q", "x", quantified.Children[1].Text)
	}

	inner := quantified.Children[2].Children[0]
	wantInner := []Kind{KindFunc, KindBioperator, KindFunc}
	if got := kinds(inner.Children); !equalKinds(got, wantInner) {
		t.Errorf("expected subexpression children %v, got %v", wantInner, got)
	}
}

func TestParse_FunctionArguments(t *testing.T) {
	tests := []struct {
		formula string
		args    int
	}{
		{"P()", 0},
		{"P(x)", 1},
		{"Loves(x, y)", 2},
		{"R(a, f(b), ~c)", 3},
	}
	for _, tt := range tests {
		fn := parseFormula(t, tt.formula).Children[0]
		if fn.Kind != KindFunc {
			t.Fatalf("%s: expected func, got %s", tt.formula, fn.Kind)
		}
		if len(fn.Children) != 2 {
			t.Fatalf("%s: expected 2 children, got %d", tt.formula, len(fn.Children))
		}
		if fn.Children[1].Kind != KindArgs || len(fn.Children[1].Children) != tt.args {
			t.Errorf("%s: expected %d args, got %d", tt.formula, tt.args, len(fn.Children[1].Children))
		}
	}
}

func TestParse_Disjunction(t *testing.T) {
	for _, formula := range []string{"P v Q", "P V Q"} {
		f := parseFormula(t, formula)
		if len(f.Children) != 3 || f.Children[1].Kind != KindBioperator {
			t.Errorf("%s: expected disjunction, got %v", formula, kinds(f.Children))
		}
	}

	f := parseFormula(t, "vx")
	if len(f.Children) != 1 || f.Children[0].Kind != KindOperand || f.Children[0].Text != "vx" {
		t.Errorf("expected operand %q, got %v", "vx", kinds(f.Children))
	}
}

func TestParse_LineExtensions(t *testing.T) {
	f := parseFormula(t, "\\top -> `\\mathbf{X}`")
	if len(f.Children) != 3 {
		t.Fatalf("expected 3 children, got %v", kinds(f.Children))
	}
	if f.Children[0].Kind != KindLineExt || f.Children[0].Text != "\\top " {
		t.Errorf("expected command with trailing space, got %s %q", f.Children[0].Kind, f.Children[0].Text)
	}
	if f.Children[2].Kind != KindLineExt || f.Children[2].Text != "\\mathbf{X}" {
		t.Errorf("expected raw text without backticks, got %s %q", f.Children[2].Kind, f.Children[2].Text)
	}
}

func TestParse_Negation(t *testing.T) {
	f := parseFormula(t, "~~P")
	neg := f.Children[0]
	if neg.Kind != KindNeg || len(neg.Children) != 1 || neg.Children[0].Kind != KindNeg {
		t.Fatalf("expected nested negation, got %s", neg.Kind)
	}
}

func TestParse_CRLF(t *testing.T) {
	root, err := Parse(strings.ReplaceAll(sample, "\n", "\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 5 {
		t.Fatalf("expected 5 children, got %d", len(root.Children))
	}
	if v := root.Children[0].Children[1].Children[1].Text; v != " Logic" {
		t.Errorf("expected value without carriage return, got %q", v)
	}
	if l := root.Children[1].Text; l != "Modus ponens" {
		t.Errorf("expected label without carriage return, got %q", l)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "1:1: expected '[config]' header, found end of input"},
		{"unclosed paren", "[config]\ntitle: x\n\n1: (P ^ Q\n", "4:10: expected ')', found end of line"},
		{"stray character", "[config]\n1: P % Q\n", `2:6: expected end of line, found "%"`},
		{"detached parenthesis", "[config]\n1: P (x)\n", `2:6: expected end of line, found "("`},
		{"missing colon", "[config]\n1 P\n", `2:3: expected ':' after premise number, found "P"`},
		{"bare formula", "[config]\nP -> Q\n", `2:1: expected a label, premise or conclusion, found "P"`},
		{"missing variable", "[config]\n1: @ (P)\n", `2:6: expected a variable after quantifier, found "("`},
		{"unclosed bracket", "[config\n", "1:8: expected ']', found end of line"},
		{"reserved v", "[config]\n:. v\n", `2:4: expected a formula, found "v"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
			cat, ok := CategoryOf(err)
			if !ok || cat != Syntax {
				t.Errorf("expected syntax error, got %v (ok=%v)", cat, ok)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	src := "[config]\ntitle: x\n\n1: (P ^ Q\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	annotated := Annotate(err, src)
	msg := annotated.Error()
	if !strings.HasPrefix(msg, "syntax error at 4:10: expected ')', found end of line") {
		t.Errorf("unexpected header: %q", msg)
	}
	if !strings.Contains(msg, "  4 | 1: (P ^ Q\n    |          ^") {
		t.Errorf("expected caret under column 10, got:\n%s", msg)
	}

	var gerr *Error
	if !errors.As(annotated, &gerr) {
		t.Error("expected annotated error to unwrap to *Error")
	}

	plain := errors.New("boom")
	if Annotate(plain, src) != plain {
		t.Error("expected non-grammar errors to pass through unchanged")
	}
}

func TestDump(t *testing.T) {
	root, err := Parse(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var b strings.Builder
	if err := Dump(&b, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	for _, want := range []string{"root 1:1", "   header 1:1", "   arg 7:1 [", "      bioperator 7:6"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected dump to contain %q, got:\n%s", want, out)
		}
	}
}
