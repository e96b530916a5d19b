package grammar

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree rooted at n, one node per line
// with its rule, span and text.
func Dump(w io.Writer, n *Node) error {
	return dump(w, n, 0)
}

func dump(w io.Writer, n *Node, depth int) error {
	text := n.Text
	if len(n.Children) > 0 && strings.Contains(text, "\n") {
		text = text[:strings.IndexByte(text, '\n')] + "..."
	}
	_, err := fmt.Fprintf(w, "%s%s %d:%d [%d,%d) %q\n",
		strings.Repeat("   ", depth), n.Kind, n.Span.Line, n.Span.Column, n.Span.Start, n.Span.End, text)
	if err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
