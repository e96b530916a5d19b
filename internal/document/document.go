// Package document assembles parsed argument notation into titled sections
// and renders them into a LaTeX document.
package document

// Document is everything the templating step needs.
type Document struct {
	Title    string    `json:"title" yaml:"title"`
	Author   string    `json:"author" yaml:"author"`
	Date     string    `json:"date" yaml:"date"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is one argument block: a label, its premises and a conclusion.
type Section struct {
	Label      string   `json:"label" yaml:"label"`
	Premises   []string `json:"premises" yaml:"premises"` // emitted \argument fragments
	Conclusion string   `json:"conclusion" yaml:"conclusion"`
}

// PremiseCount returns the number of premises across all sections.
func (d *Document) PremiseCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Premises)
	}
	return n
}
