package grammar

import (
	"strings"
	"testing"
)

func leaf(text string) *Node {
	return &Node{Kind: KindOperand, Text: text}
}

func TestExtract_ExactArity(t *testing.T) {
	n := &Node{Kind: KindNeg, Children: []*Node{leaf("P")}}
	got, err := Extract(n, 1, "neg params")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Text != "P" {
		t.Errorf("expected [P], got %v", got)
	}
}

func TestExtract_TooFewChildren(t *testing.T) {
	n := &Node{Kind: KindFunc, Span: Span{Start: 3, End: 7, Line: 2, Column: 4}, Children: []*Node{leaf("P")}}
	_, err := Extract(n, 2, "func params")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	cat, _ := CategoryOf(err)
	if cat != Arity {
		t.Errorf("expected arity error, got %v", cat)
	}
	want := "2:4: func params: expected at least 2 children, got 1. Matched func"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestExtract_ExcessIsInternal(t *testing.T) {
	n := &Node{Kind: KindSubexpr, Children: []*Node{leaf("P"), leaf("Q")}}
	_, err := Extract(n, 1, "subexpr params")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsInternal(err) {
		t.Errorf("expected internal error, got %v", err)
	}
	if !strings.Contains(err.Error(), "expected exactly 1 children, got 2") {
		t.Errorf("expected counts in message, got %q", err.Error())
	}
}

func TestExtractExcess_ReturnsRemainder(t *testing.T) {
	n := &Node{Kind: KindArg, Children: []*Node{leaf("1"), leaf("P"), leaf("J")}}
	required, rest, err := ExtractExcess(n, 2, "arg params")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(required) != 2 || len(rest) != 1 {
		t.Fatalf("expected 2 required and 1 extra, got %d and %d", len(required), len(rest))
	}
	if rest[0].Text != "J" {
		t.Errorf("expected extra %q, got %q", "J", rest[0].Text)
	}

	// Appending to the required slice must not clobber the remainder.
	_ = append(required, leaf("X"))
	if n.Children[2].Text != "J" {
		t.Errorf("expected children to be untouched, got %q", n.Children[2].Text)
	}
}
