package grammar

// Kind identifies the syntax rule that produced a Node.
type Kind string

const (
	KindRoot        Kind = "root"
	KindHeader      Kind = "header"
	KindHeaderLine  Kind = "header_line"
	KindHeaderKey   Kind = "header_key"
	KindHeaderValue Kind = "header_value"
	KindLabel       Kind = "label"
	KindLabelText   Kind = "label_text"

	KindArg           Kind = "arg"
	KindNumber        Kind = "number"
	KindJustification Kind = "justification"
	KindConclusion    Kind = "conclusion"

	KindFormula     Kind = "formula"
	KindQuantified  Kind = "quantified"
	KindExistencial Kind = "existencial"
	KindNeg         Kind = "neg"
	KindBioperator  Kind = "bioperator"
	KindSubexpr     Kind = "subexpr"
	KindFunc        Kind = "func"
	KindArgs        Kind = "args"
	KindOperand     Kind = "operand"
	KindLineExt     Kind = "line_ext"
)

// Span locates a node in the source. Start and End are byte offsets
// (End exclusive); Line and Column are 1-based and refer to Start.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Node is one element of the concrete parse tree.
type Node struct {
	Kind     Kind
	Text     string // matched source text
	Span     Span
	Children []*Node
}
