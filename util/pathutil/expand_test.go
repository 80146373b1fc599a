package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := Expand("~/grammars/calc.gram")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "grammars", "calc.gram"), got)

	got, err = Expand("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	t.Setenv("GRAM_TEST_DIR", "proj")
	got, err = Expand("$GRAM_TEST_DIR/calc.gram")
	require.NoError(t, err)
	assert.Equal(t, "proj/calc.gram", got)

	// Relative paths stay relative.
	got, err = Expand("grammars/calc.gram")
	require.NoError(t, err)
	assert.Equal(t, "grammars/calc.gram", got)
}
