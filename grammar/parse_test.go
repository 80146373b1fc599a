package grammar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/gram/parser"
	"github.com/grovetools/gram/tokenizer"
)

const calcGrammar = `// Simple arithmetic.
NUMBER = regex("[0-9]+")
PLUS = "+"
TIMES = "*"
WHITESPACE = regex("[ \t]+")

ROOT = EXPR
EXPR = TERM (PLUS TERM)*
TERM = NUMBER (TIMES NUMBER)*

@prune WHITESPACE
`

func TestParseGrammar(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	// Terminals keep declaration order; literals remember their quoted
	// form, regexes do not.
	require.Len(t, g.Terminals, 4)
	assert.Equal(t, tokenizer.TokenType("NUMBER"), g.Terminals[0].Name)
	assert.Equal(t, "[0-9]+", g.Terminals[0].Pattern)
	assert.Equal(t, "", g.Terminals[0].Literal)
	assert.Equal(t, tokenizer.TokenType("PLUS"), g.Terminals[1].Name)
	assert.Equal(t, `\+`, g.Terminals[1].Pattern)
	assert.Equal(t, "+", g.Terminals[1].Literal)
	assert.Equal(t, "[ \t]+", g.Terminals[3].Pattern)

	assert.Equal(t, []parser.TokenType{"ROOT", "EXPR", "TERM"}, g.NonTerminals)
	assert.Equal(t, map[tokenizer.TokenType]bool{"WHITESPACE": true}, g.PrunedTerminals)
	assert.Empty(t, g.PrunedNonTerminals)
	assert.Equal(t, parser.RootSymbol, g.Root)
}

func TestParseGrammarRules(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	root, ok := g.Rules["ROOT"].(*parser.NonTerminalExpression)
	require.True(t, ok)
	assert.Equal(t, parser.TokenType("EXPR"), root.Type)

	expr, ok := g.Rules["EXPR"].(*parser.ConcatenationExpression)
	require.True(t, ok)
	require.Len(t, expr.Children, 2)

	first, ok := expr.Children[0].(*parser.NonTerminalExpression)
	require.True(t, ok)
	assert.Equal(t, parser.TokenType("TERM"), first.Type)

	rest, ok := expr.Children[1].(*parser.RepeatExpression)
	require.True(t, ok)
	assert.Equal(t, 0, rest.MinRepeats)

	pair, ok := rest.Child.(*parser.ConcatenationExpression)
	require.True(t, ok)
	require.Len(t, pair.Children, 2)
	plus, ok := pair.Children[0].(*parser.TerminalExpression)
	require.True(t, ok)
	assert.Equal(t, parser.TokenType("PLUS"), plus.Type)
}

func TestGrammarParsesInput(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	code := "1 + 2*3"
	tree, tokens, err := g.Parse("calc.txt", code)
	require.NoError(t, err)

	assert.Equal(t, parser.TokenType("ROOT"), tree.Type)
	assert.Equal(t, code, tree.Value(tokens, code))

	expr := tree.FirstOfType("EXPR")
	require.NotNil(t, expr)
	terms := expr.ChildrenOfType("TERM")
	require.Len(t, terms, 2)
	assert.Equal(t, "2*3", terms[1].Value(tokens, code))
}

func TestGrammarReportsSyntaxError(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	_, _, err = g.Parse("calc.txt", "1 + + 2")
	require.Error(t, err)

	// The repeat backtracks out of the failed "+ +" iteration, so the
	// error points at the first unconsumed token.
	var synErr *parser.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 2, synErr.Offset)
}

func TestParseQuantifiers(t *testing.T) {
	g, err := Parse("t.gram", `A = "a"
B = "b"
ROOT = (A)? (B){2,...}
`)
	require.NoError(t, err)

	rule, ok := g.Rules["ROOT"].(*parser.ConcatenationExpression)
	require.True(t, ok)
	require.Len(t, rule.Children, 2)

	_, ok = rule.Children[0].(*parser.OptionalExpression)
	assert.True(t, ok)

	rep, ok := rule.Children[1].(*parser.RepeatExpression)
	require.True(t, ok)
	assert.Equal(t, 2, rep.MinRepeats)
}

func TestParseChoice(t *testing.T) {
	g, err := Parse("t.gram", `A = "a"
B = "b"
ROOT = A | B
`)
	require.NoError(t, err)

	choice, ok := g.Rules["ROOT"].(*parser.ConjunctionExpression)
	require.True(t, ok)
	assert.Len(t, choice.Children, 2)
}

func TestParsePruneNonTerminal(t *testing.T) {
	g, err := Parse("t.gram", `A = "a"
ROOT = (NOISE)* A
NOISE = A A

@prune NOISE
`)
	require.NoError(t, err)
	assert.Equal(t, map[parser.TokenType]bool{"NOISE": true}, g.PrunedNonTerminals)
}

func TestParseMissingTrailingNewline(t *testing.T) {
	g, err := Parse("t.gram", "A = \"a\"\nROOT = (A)*")
	require.NoError(t, err)
	assert.Len(t, g.Terminals, 1)
}

func TestParseEmptyGrammar(t *testing.T) {
	_, err := Parse("t.gram", "")
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "empty grammar")
}

func TestParseMissingRoot(t *testing.T) {
	_, err := Parse("t.gram", `A = "a"
`)
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "does not define a ROOT")
}

func TestParseDuplicateDefinition(t *testing.T) {
	_, err := Parse("t.gram", `A = "a"
A = "b"
ROOT = (A)*
`)
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "duplicate definition of A")

	// The error points at the second definition.
	line, _, _ := position(t, gramErr)
	assert.Equal(t, 2, line)
}

func TestParseUndefinedReference(t *testing.T) {
	_, err := Parse("t.gram", `ROOT = MISSING
`)
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "undefined symbol MISSING")
}

func TestParseInlineLiteralRejected(t *testing.T) {
	_, err := Parse("t.gram", `A = "a"
ROOT = A "x"
`)
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "define a named terminal")
}

func TestParsePruneUndefinedSymbol(t *testing.T) {
	_, err := Parse("t.gram", `A = "a"
ROOT = (A)*

@prune NOPE
`)
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "@prune references undefined symbol NOPE")
}

func TestParseInvalidTerminalPattern(t *testing.T) {
	_, err := Parse("t.gram", `A = regex("[")
ROOT = (A)*
`)
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "invalid terminal pattern")
}

func TestParseAnchoredTerminalPattern(t *testing.T) {
	_, err := Parse("t.gram", `A = regex("^a")
ROOT = (A)*
`)
	require.Error(t, err)

	var gramErr *Error
	require.ErrorAs(t, err, &gramErr)
	assert.Contains(t, gramErr.Message, "must not start with '^'")
}

func TestParseGrammarSyntaxError(t *testing.T) {
	// A definition with no expression is a syntax error in the grammar
	// file itself, reported by the bootstrap parser.
	_, err := Parse("t.gram", "ROOT =\n")
	require.Error(t, err)

	var synErr *parser.SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.gram")
	require.NoError(t, os.WriteFile(path, []byte(calcGrammar), 0644))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, g.Terminals, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.gram"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	// An unknown root set after parsing fails validation. This is how a
	// bad grammar.root config override surfaces.
	g.Root = "NOPE"
	assert.Error(t, g.Validate())

	g.Root = "EXPR"
	assert.NoError(t, g.Validate())
}

func position(t *testing.T, err *Error) (int, int, string) {
	t.Helper()
	file, line, col := err.Position()
	_ = file
	return line, col, err.SourceLine()
}

func TestGrammarTraceLogger(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	g.SetTraceLogger(logger.WithField("component", "engine"))

	_, _, err = g.Parse("calc.txt", "1 + 2")
	require.NoError(t, err)

	messages := map[string]bool{}
	for _, entry := range hook.Entries {
		messages[entry.Message] = true
	}
	assert.True(t, messages["tokenize attempt"], "tokenizer attempts should be traced")
	assert.True(t, messages["parse attempt"], "parser attempts should be traced")
}
