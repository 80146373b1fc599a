// Package textpos converts byte offsets in source text to human-readable
// line and column positions.
package textpos

import "strings"

// LineColumn returns the 1-based line and column of a byte offset.
func LineColumn(code string, offset int) (line, column int) {
	if offset > len(code) {
		offset = len(code)
	}
	before := code[:offset]
	line = 1 + strings.Count(before, "\n")
	column = offset - strings.LastIndex(before, "\n")
	return line, column
}

// SourceLine returns the full line of text containing the byte offset,
// without its trailing newline.
func SourceLine(code string, offset int) string {
	if offset > len(code) {
		offset = len(code)
	}
	start := strings.LastIndex(code[:offset], "\n") + 1
	end := strings.Index(code[offset:], "\n")
	if end == -1 {
		end = len(code)
	} else {
		end += offset
	}
	return code[start:end]
}
