package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Rule order matters: the first pattern that matches at the current offset wins.
var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Therefore", Pattern: `:\.`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "And", Pattern: `\^`},
	{Name: "Or", Pattern: `[vV]\b`},
	{Name: "Quantifier", Pattern: `[@&]`},
	{Name: "Not", Pattern: `[~!]`},
	{Name: "Command", Pattern: `\\[A-Za-z]+[ \t]*|\\.`},
	{Name: "Raw", Pattern: "`[^`\n]*`"},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_']*`},
	{Name: "Punct", Pattern: `[:#\[\](),]`},
	{Name: "Other", Pattern: `.`},
})

var (
	symbols = notationLexer.Symbols()

	tokNewline    = symbols["Newline"]
	tokWhitespace = symbols["Whitespace"]
	tokTherefore  = symbols["Therefore"]
	tokArrow      = symbols["Arrow"]
	tokAnd        = symbols["And"]
	tokOr         = symbols["Or"]
	tokQuantifier = symbols["Quantifier"]
	tokNot        = symbols["Not"]
	tokCommand    = symbols["Command"]
	tokRaw        = symbols["Raw"]
	tokNumber     = symbols["Number"]
	tokIdent      = symbols["Ident"]
	tokPunct      = symbols["Punct"]
)

// tokenize lexes input into a token slice terminated by the EOF token.
// Whitespace is dropped; newlines are kept because lines are significant.
func tokenize(input string) ([]lexer.Token, error) {
	lex, err := notationLexer.LexString("", input)
	if err != nil {
		return nil, err
	}

	var tokens []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == tokWhitespace {
			continue
		}
		tokens = append(tokens, tok)
		if tok.EOF() {
			return tokens, nil
		}
	}
}
