// Package tokenizer turns source text into a flat token stream using an
// ordered list of anchored regular expression rules.
package tokenizer

// TokenType identifies a terminal symbol by name. It mirrors
// parser.TokenType; the two packages share symbol names but not rule sets.
type TokenType string

// Token is a lexeme in the source text. Offset and Length are in bytes.
type Token struct {
	Type   TokenType `json:"type"`
	Offset int       `json:"offset"`
	Length int       `json:"length"`
}

// Value returns the source text this token covers.
func (t Token) Value(code string) string {
	return code[t.Offset : t.Offset+t.Length]
}
