package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fenceLanguages are the info strings that mark a fenced block as notation.
var fenceLanguages = map[string]bool{
	"argtex": true,
	"logic":  true,
}

// MarkdownExtractor returns the fenced code blocks tagged argtex or logic,
// in document order. A file without such blocks is taken to be notation
// as a whole.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	src := []byte(normalize(string(data)))

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if fenceLanguages[string(fence.Language(src))] {
			blocks = append(blocks, blockText(fence, src))
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return "", fmt.Errorf("walk markdown: %w", err)
	}

	if len(blocks) == 0 {
		return string(src), nil
	}
	return joinLines(blocks), nil
}

// blockText returns the raw lines of a code block.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}
