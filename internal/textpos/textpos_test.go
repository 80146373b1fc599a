package textpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineColumn(t *testing.T) {
	code := "first\nsecond\nthird"

	tests := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{"start of input", 0, 1, 1},
		{"middle of first line", 3, 1, 4},
		{"newline itself", 5, 1, 6},
		{"start of second line", 6, 2, 1},
		{"middle of second line", 9, 2, 4},
		{"start of third line", 13, 3, 1},
		{"end of input", 18, 3, 6},
		{"offset past end is clamped", 100, 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := LineColumn(code, tt.offset)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.column, col)
		})
	}
}

func TestSourceLine(t *testing.T) {
	code := "first\nsecond\nthird"

	assert.Equal(t, "first", SourceLine(code, 0))
	assert.Equal(t, "first", SourceLine(code, 3))
	assert.Equal(t, "second", SourceLine(code, 6))
	assert.Equal(t, "second", SourceLine(code, 11))
	assert.Equal(t, "third", SourceLine(code, 13))
	assert.Equal(t, "third", SourceLine(code, 100))
}

func TestSourceLineEmptyInput(t *testing.T) {
	assert.Equal(t, "", SourceLine("", 0))
}
