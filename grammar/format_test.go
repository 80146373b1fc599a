package grammar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	want := "// Canonical grammar file, regenerate with `gram fmt`.\n" +
		"// The root symbol is ROOT.\n" +
		"\n" +
		`NUMBER = regex("[0-9]+")
PLUS = "+"
TIMES = "*"
WHITESPACE = regex("[ \t]+")

EXPR = TERM (PLUS TERM)*
ROOT = EXPR
TERM = NUMBER (TIMES NUMBER)*

@prune WHITESPACE
`
	assert.Equal(t, want, g.Format())
}

func TestFormatRoundTrip(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	// The canonical form must parse back to a grammar that formats
	// identically.
	formatted := g.Format()
	g2, err := Parse("calc.gram", formatted)
	require.NoError(t, err)
	assert.Equal(t, formatted, g2.Format())
}

func TestFormatChoiceParens(t *testing.T) {
	g, err := Parse("t.gram", `A = "a"
B = "b"
C = "c"
ROOT = A | B (A | C)? (B)+
`)
	require.NoError(t, err)

	formatted := g.Format()
	// Top-level choice is unparenthesized, nested choice keeps parens.
	assert.Contains(t, formatted, "ROOT = A | B (A | C)? (B)+\n")

	g2, err := Parse("t.gram", formatted)
	require.NoError(t, err)
	assert.Equal(t, formatted, g2.Format())
}

func TestFormatRepeatRange(t *testing.T) {
	g, err := Parse("t.gram", `A = "a"
ROOT = (A){3,...}
`)
	require.NoError(t, err)
	assert.Contains(t, g.Format(), "ROOT = (A){3,...}\n")
}

func TestCheckStale(t *testing.T) {
	g, err := Parse("calc.gram", calcGrammar)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "calc.gram")

	// Missing file is stale.
	stale, formatted, err := CheckStale(path, g)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, g.Format(), formatted)

	// Non-canonical contents are stale.
	require.NoError(t, os.WriteFile(path, []byte(calcGrammar), 0644))
	stale, _, err = CheckStale(path, g)
	require.NoError(t, err)
	assert.True(t, stale)

	// Canonical contents are not.
	require.NoError(t, os.WriteFile(path, []byte(g.Format()), 0644))
	stale, _, err = CheckStale(path, g)
	require.NoError(t, err)
	assert.False(t, stale)
}
