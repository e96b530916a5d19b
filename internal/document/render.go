package document

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

// defaultTemplate defines the \argument, \conclusion and \pred macros so
// the output compiles on its own.
//
//go:embed template.tex
var defaultTemplate string

// Renderer fills a LaTeX template with a Document. Templates use << and >>
// as action delimiters so LaTeX braces need no escaping.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses a template; an empty text selects the built-in one.
func NewRenderer(text string) (*Renderer, error) {
	if text == "" {
		text = defaultTemplate
	}
	tmpl, err := template.New("document").Delims("<<", ">>").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// LoadRenderer reads a template file; an empty path selects the built-in one.
func LoadRenderer(path string) (*Renderer, error) {
	if path == "" {
		return NewRenderer("")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return NewRenderer(string(data))
}

// Render writes doc through the template.
func (r *Renderer) Render(w io.Writer, doc *Document) error {
	if err := r.tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(doc *Document) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}
