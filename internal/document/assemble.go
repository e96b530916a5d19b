package document

import (
	"github.com/dgallion1/argtex/internal/grammar"
	"github.com/dgallion1/argtex/internal/latex"
)

// Parse translates notation source into a Document. The first error aborts
// the translation.
func Parse(input string) (*Document, error) {
	root, err := grammar.Parse(input)
	if err != nil {
		return nil, err
	}
	return Assemble(root)
}

// Assemble walks a parsed root: the header becomes metadata, then labels,
// premises and conclusions are grouped into sections. Numbering restarts
// with every section.
func Assemble(root *grammar.Node) (*Document, error) {
	if root.Kind != grammar.KindRoot {
		return nil, grammar.NodeErrorf(grammar.Internal, root, "expected root, got %s", root.Kind)
	}
	first, body, err := grammar.ExtractExcess(root, 1, "root args")
	if err != nil {
		return nil, err
	}
	doc, err := ParseHeader(first[0])
	if err != nil {
		return nil, err
	}

	var (
		num     latex.Numbering
		current Section
	)
	for _, n := range body {
		switch n.Kind {
		case grammar.KindLabel:
			current.Label = n.Text
			continue
		case grammar.KindArg, grammar.KindConclusion:
		default:
			return nil, grammar.NodeErrorf(grammar.Internal, n, "unexpected rule %s", n.Kind)
		}

		text, err := latex.Emit(n, &num)
		if err != nil {
			return nil, err
		}

		if n.Kind == grammar.KindArg {
			current.Premises = append(current.Premises, text)
			continue
		}
		current.Conclusion = text
		// A conclusion without premises is not a section.
		if len(current.Premises) > 0 {
			doc.Sections = append(doc.Sections, current)
		}
		current = Section{}
		num.Reset()
	}

	// Keep a trailing section that never got its conclusion.
	if len(current.Premises) > 0 {
		doc.Sections = append(doc.Sections, current)
	}
	return doc, nil
}
