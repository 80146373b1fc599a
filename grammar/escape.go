// Package grammar reads and writes gram grammar files. The file format is
// self-hosted: grammar files are parsed by the gram engine itself, driven
// by a bootstrap grammar expressed directly in parser expressions.
package grammar

import (
	"fmt"
	"strings"
)

// escapeSequences maps raw characters to their escaped spelling inside
// quoted grammar literals.
var escapeSequences = map[byte]string{
	'\\': `\\`,
	'\'': `\'`,
	'"':  `\"`,
	'\a': `\a`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
}

var unescapeSequences = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// EscapeString renders s as a double-quoted grammar literal.
func EscapeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if esc, ok := escapeSequences[s[i]]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// UnescapeString parses a double-quoted grammar literal back to its raw
// value.
func UnescapeString(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("not a quoted literal: %s", s)
	}

	var b strings.Builder
	body := s[1 : len(s)-1]
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("trailing backslash in literal: %s", s)
		}
		i++
		raw, ok := unescapeSequences[body[i]]
		if !ok {
			return "", fmt.Errorf("unknown escape sequence \\%c in literal: %s", body[i], s)
		}
		b.WriteByte(raw)
	}
	return b.String(), nil
}
