package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGo(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	source, err := g.GenerateGo("calc")
	require.NoError(t, err)
	code := string(source)

	assert.True(t, strings.HasPrefix(code, "// Code generated by gram generate; DO NOT EDIT.\n"))
	assert.Contains(t, code, "package calc\n")

	// Terminal and non-terminal symbol constants.
	assert.Contains(t, code, `TokenNumber tokenizer.TokenType = "NUMBER"`)
	assert.Contains(t, code, `TokenWhitespace tokenizer.TokenType = "WHITESPACE"`)
	assert.Contains(t, code, `SymbolRoot parser.TokenType = "ROOT"`)
	assert.Contains(t, code, `SymbolExpr parser.TokenType = "EXPR"`)

	// Rules in declaration order with backquoted patterns.
	assert.Contains(t, code, "{Type: TokenNumber, Pattern: `[0-9]+`},")
	assert.Contains(t, code, "{Type: TokenPlus, Pattern: `\\+`},")
	assert.Contains(t, code, "TokenWhitespace: true,")

	// Rule expressions.
	assert.Contains(t, code, `SymbolRoot: parser.NonTerm("EXPR"),`)
	assert.Contains(t, code,
		`SymbolExpr: parser.Concat(parser.NonTerm("TERM"), parser.Repeat(parser.Concat(parser.Term("PLUS"), parser.NonTerm("TERM")))),`)
}

func TestGenerateGoQuantifiers(t *testing.T) {
	g, err := Parse("t.gram", `A = "a"
B = "b"
ROOT = (A)? (B){2,...}
`)
	require.NoError(t, err)

	source, err := g.GenerateGo("demo")
	require.NoError(t, err)

	assert.Contains(t, string(source),
		`SymbolRoot: parser.Concat(parser.Opt(parser.Term("A")), parser.AtLeast(parser.Term("B"), 2)),`)
}

func TestGoSymbolName(t *testing.T) {
	assert.Equal(t, "TokenName", goSymbolName("Token", "NAME"))
	assert.Equal(t, "TokenRepeatRange", goSymbolName("Token", "REPEAT_RANGE"))
	assert.Equal(t, "SymbolRoot", goSymbolName("Symbol", "ROOT"))
	assert.Equal(t, "SymbolA1", goSymbolName("Symbol", "A1"))
}

func TestQuotePattern(t *testing.T) {
	assert.Equal(t, "`[0-9]+`", quotePattern(`[0-9]+`))
	assert.Equal(t, "\"a`b\"", quotePattern("a`b"))
}
