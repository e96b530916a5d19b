package document

import (
	"strings"

	"github.com/dgallion1/argtex/internal/grammar"
)

const configLabel = "config"

// Required header keys, in the order missing ones are reported.
var headerKeys = []string{"title", "author", "date"}

// ParseHeader validates the [config] block and returns a Document holding
// its metadata and no sections.
func ParseHeader(header *grammar.Node) (*Document, error) {
	if header.Kind != grammar.KindHeader {
		return nil, grammar.NodeErrorf(grammar.Internal, header, "expected header, got %s", header.Kind)
	}

	first, lines, err := grammar.ExtractExcess(header, 1, "header args")
	if err != nil {
		return nil, err
	}
	inner, err := grammar.Extract(first[0], 1, "header label args")
	if err != nil {
		return nil, err
	}
	label := inner[0]
	if label.Text != configLabel {
		return nil, grammar.NodeErrorf(grammar.Semantic, label, "expected '%s', got '%s' instead", configLabel, label.Text)
	}

	values := make(map[string]string, len(headerKeys))
	for _, line := range lines {
		if line.Kind != grammar.KindHeaderLine {
			return nil, grammar.NodeErrorf(grammar.Internal, line, "expected header_line, got %s", line.Kind)
		}
		kv, err := grammar.Extract(line, 2, "header_line args")
		if err != nil {
			return nil, err
		}
		key, value := kv[0], kv[1]

		switch key.Text {
		case "title", "date", "author":
		default:
			return nil, grammar.NodeErrorf(grammar.Semantic, key, "invalid configuration key '%s'", key.Text)
		}
		if _, ok := values[key.Text]; ok {
			return nil, grammar.NodeErrorf(grammar.Semantic, key, "configuration value for '%s' has already been provided", key.Text)
		}
		values[key.Text] = strings.TrimSpace(value.Text)
	}

	for _, key := range headerKeys {
		if _, ok := values[key]; !ok {
			return nil, grammar.NodeErrorf(grammar.Semantic, header, "missing configuration key '%s'", key)
		}
	}

	return &Document{
		Title:    values["title"],
		Author:   values["author"],
		Date:     values["date"],
		Sections: []Section{},
	}, nil
}
