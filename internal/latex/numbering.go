package latex

import "fmt"

// Numbering enforces 1-based, gap-free premise numbering within one section.
// The zero value expects premise 1.
type Numbering struct {
	current uint16
}

// ExpectNext returns the number the next premise must carry.
func (n *Numbering) ExpectNext() uint16 {
	return n.current + 1
}

// Advance accepts number as the next premise or returns a *SequenceError.
func (n *Numbering) Advance(number uint16) error {
	if want := n.ExpectNext(); number != want {
		return &SequenceError{Expected: want, Got: number}
	}
	n.current = number
	return nil
}

// Reset starts a new section.
func (n *Numbering) Reset() {
	n.current = 0
}

// SequenceError reports a premise numbered out of order.
type SequenceError struct {
	Expected uint16
	Got      uint16
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("expected exercise number to be %d, got %d", e.Expected, e.Got)
}
