package parser

import (
	"fmt"

	"github.com/grovetools/gram/internal/textpos"
)

// SyntaxError reports the byte offset of the first token (or end of input)
// that could not be parsed.
type SyntaxError struct {
	Filename string
	Code     string
	Offset   int
}

func (e *SyntaxError) Error() string {
	line, col := e.LineColumn()
	return fmt.Sprintf("%s:%d:%d: syntax error", e.Filename, line, col)
}

// LineColumn returns the 1-based line and column of the failure.
func (e *SyntaxError) LineColumn() (int, int) {
	return textpos.LineColumn(e.Code, e.Offset)
}

// SourceLine returns the line of source text containing the failure.
func (e *SyntaxError) SourceLine() string {
	return textpos.SourceLine(e.Code, e.Offset)
}

// Position returns the error location for diagnostic rendering.
func (e *SyntaxError) Position() (string, int, int) {
	line, col := e.LineColumn()
	return e.Filename, line, col
}

// RuleSetError reports an inconsistency between a grammar's declared
// non-terminal symbols and its rule map.
type RuleSetError struct {
	Missing    []TokenType
	Unexpected []TokenType
	NoRoot     bool
}

func (e *RuleSetError) Error() string {
	switch {
	case e.NoRoot:
		return fmt.Sprintf("non-terminal rules do not define a %s symbol", RootSymbol)
	case len(e.Missing) > 0:
		return fmt.Sprintf("non-terminal types without a rule: %v", e.Missing)
	default:
		return fmt.Sprintf("rules for undeclared non-terminal types: %v", e.Unexpected)
	}
}
