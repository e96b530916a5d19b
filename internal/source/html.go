package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

const notationClass = "argtex"

// HTMLExtractor returns the text of <pre> elements. When some of them carry
// the argtex class only those are used. Without any <pre> the body text is
// returned.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(r io.Reader, filename string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var tagged, plain []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "pre":
				t := textContent(n)
				if hasClass(n, notationClass) {
					tagged = append(tagged, t)
				} else {
					plain = append(plain, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	switch {
	case len(tagged) > 0:
		return normalize(joinLines(tagged)), nil
	case len(plain) > 0:
		return normalize(joinLines(plain)), nil
	}

	body := findBody(doc)
	if body == nil {
		body = doc
	}
	return normalize(strings.TrimSpace(textContent(body)) + "\n"), nil
}

// textContent concatenates text nodes below n, leaving whitespace intact.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			buf.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
