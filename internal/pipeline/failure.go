package pipeline

import (
	"errors"

	"github.com/dgallion1/argtex/internal/grammar"
)

// Failure is the client-facing description of a failed translation.
type Failure struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	// Detail is the message with a caret snippet of the source.
	Detail string `json:"detail,omitempty"`
}

// Describe turns err into a Failure. src, when known, is used for the
// snippet in Detail.
func Describe(err error, src string) *Failure {
	var gerr *grammar.Error
	if !errors.As(err, &gerr) {
		return &Failure{Error: err.Error(), Kind: "error"}
	}
	f := &Failure{
		Error:  gerr.Msg,
		Kind:   gerr.Category.String(),
		Line:   gerr.Span.Line,
		Column: gerr.Span.Column,
	}
	if src != "" {
		f.Detail = grammar.Annotate(err, src).Error()
	}
	return f
}

// Internal reports whether the failure is a translator bug rather than bad
// input.
func (f *Failure) Internal() bool {
	return f.Kind == grammar.Internal.String()
}
