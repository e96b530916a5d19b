package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/argtex/internal/grammar"
	"github.com/dgallion1/argtex/internal/latex"
)

const header = "[config]\ntitle: Syllogisms\nauthor: Ann\ndate: today\n"

func TestParse_SingleSection(t *testing.T) {
	doc, err := Parse(header + "\n# Modus ponens\n1: P -> Q\n2: P\n:. Q\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	s := doc.Sections[0]
	if s.Label != "Modus ponens" {
		t.Errorf("expected label %q, got %q", "Modus ponens", s.Label)
	}
	want := []string{`\argument{P\rightarrow Q}`, `\argument{P}`}
	if len(s.Premises) != len(want) {
		t.Fatalf("expected %d premises, got %v", len(want), s.Premises)
	}
	for i := range want {
		if s.Premises[i] != want[i] {
			t.Errorf("premise %d: expected %q, got %q", i, want[i], s.Premises[i])
		}
	}
	if s.Conclusion != `\conclusion{Q}` {
		t.Errorf("expected conclusion %q, got %q", `\conclusion{Q}`, s.Conclusion)
	}
	if doc.PremiseCount() != 2 {
		t.Errorf("expected 2 premises in total, got %d", doc.PremiseCount())
	}
}

func TestParse_UnlabelledSection(t *testing.T) {
	doc, err := Parse(header + "1: P\n2: Q\n:. R\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	s := doc.Sections[0]
	if s.Label != "" {
		t.Errorf("expected empty label, got %q", s.Label)
	}
	if strings.Join(s.Premises, ";") != `\argument{P};\argument{Q}` {
		t.Errorf("unexpected premises %v", s.Premises)
	}
	if s.Conclusion != `\conclusion{R}` {
		t.Errorf("unexpected conclusion %q", s.Conclusion)
	}
}

func TestParse_NumberingRestartsPerSection(t *testing.T) {
	doc, err := Parse(header + "# A\n1: P\n:. P\n# B\n1: Q\n2: R\n:. Q\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Label != "A" || doc.Sections[1].Label != "B" {
		t.Errorf("unexpected labels %q, %q", doc.Sections[0].Label, doc.Sections[1].Label)
	}
	if len(doc.Sections[1].Premises) != 2 {
		t.Errorf("expected 2 premises in second section, got %d", len(doc.Sections[1].Premises))
	}
}

func TestParse_TrailingSectionWithoutConclusion(t *testing.T) {
	doc, err := Parse(header + "# A\n1: P\n:. P\n# Open\n1: Q\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	last := doc.Sections[1]
	if last.Label != "Open" || len(last.Premises) != 1 || last.Conclusion != "" {
		t.Errorf("unexpected trailing section %+v", last)
	}
}

func TestParse_DropsSectionsWithoutPremises(t *testing.T) {
	doc, err := Parse(header + "# Only a label\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 0 {
		t.Errorf("expected no sections, got %+v", doc.Sections)
	}

	doc, err = Parse(header + "# Bare\n:. Q\n# Real\n1: P\n:. P\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %+v", doc.Sections)
	}
	if doc.Sections[0].Label != "Real" {
		t.Errorf("expected label %q, got %q", "Real", doc.Sections[0].Label)
	}
}

func TestParse_LaterLabelWins(t *testing.T) {
	doc, err := Parse(header + "# First\n# Second\n1: P\n:. P\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Label != "Second" {
		t.Errorf("unexpected sections %+v", doc.Sections)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	doc, err := Parse(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Syllogisms" || doc.Author != "Ann" || doc.Date != "today" {
		t.Errorf("unexpected metadata %+v", doc)
	}
	if len(doc.Sections) != 0 {
		t.Errorf("expected no sections, got %d", len(doc.Sections))
	}
}

func TestParse_NumberingErrors(t *testing.T) {
	_, err := Parse(header + "1: P\n3: Q\n")
	if err == nil {
		t.Fatal("expected error for skipped premise number")
	}
	var seq *latex.SequenceError
	if !errors.As(err, &seq) {
		t.Fatalf("expected SequenceError in chain, got %v", err)
	}
	if seq.Expected != 2 || seq.Got != 3 {
		t.Errorf("expected 2/3, got %d/%d", seq.Expected, seq.Got)
	}
	if !hasCategory(err, grammar.Semantic) {
		t.Errorf("expected validation error, got %v", err)
	}

	// Numbering does not carry over a conclusion.
	if _, err := Parse(header + "1: P\n:. P\n2: Q\n"); err == nil {
		t.Fatal("expected error when numbering continues past a conclusion")
	}
}

func TestParse_PropagatesErrors(t *testing.T) {
	if _, err := Parse("1: P\n"); !hasCategory(err, grammar.Syntax) {
		t.Errorf("expected syntax error without header, got %v", err)
	}
	if _, err := Parse("[config]\ntitle: T\n"); !hasCategory(err, grammar.Semantic) {
		t.Errorf("expected validation error for missing keys, got %v", err)
	}
}

func TestAssemble_RejectsNonRoot(t *testing.T) {
	_, err := Assemble(&grammar.Node{Kind: grammar.KindArg})
	if !grammar.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func hasCategory(err error, want grammar.Category) bool {
	got, ok := grammar.CategoryOf(err)
	return ok && got == want
}
