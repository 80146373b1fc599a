package tokenizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/gram/internal/textpos"
)

// TerminalRule binds a terminal type to a regular expression. Rules are
// tried in order at each position; the first rule with a non-empty match
// wins. The pattern must not be anchored, the tokenizer anchors it.
type TerminalRule struct {
	Type    TokenType
	Pattern string

	re *regexp.Regexp
}

// TokenizeError reports a position in the source that no terminal rule
// matched.
type TokenizeError struct {
	Filename string
	Code     string
	Offset   int
}

func (e *TokenizeError) Error() string {
	line, col := e.LineColumn()
	return fmt.Sprintf("%s:%d:%d: no terminal rule matches input", e.Filename, line, col)
}

// LineColumn returns the 1-based line and column of the failure.
func (e *TokenizeError) LineColumn() (int, int) {
	return textpos.LineColumn(e.Code, e.Offset)
}

// SourceLine returns the line of source text containing the failure.
func (e *TokenizeError) SourceLine() string {
	return textpos.SourceLine(e.Code, e.Offset)
}

// Position returns the error location for diagnostic rendering.
func (e *TokenizeError) Position() (string, int, int) {
	line, col := e.LineColumn()
	return e.Filename, line, col
}

// Tokenizer splits source text into tokens. Terminal types listed in
// PrunedTerminals are matched but not emitted; this is how whitespace and
// comments are discarded before parsing.
type Tokenizer struct {
	Filename        string
	Code            string
	Rules           []TerminalRule
	PrunedTerminals map[TokenType]bool
	Verbose         bool

	logger *logrus.Entry
}

// NewTokenizer creates a tokenizer for a single source file. It returns an
// error if any rule pattern fails to compile or starts with a caret, since
// anchoring is added here.
func NewTokenizer(filename, code string, rules []TerminalRule, pruned map[TokenType]bool) (*Tokenizer, error) {
	compiled := make([]TerminalRule, len(rules))
	for i, rule := range rules {
		if strings.HasPrefix(rule.Pattern, "^") {
			return nil, fmt.Errorf("terminal rule %s: pattern must not start with '^', anchoring is implicit", rule.Type)
		}
		re, err := regexp.Compile("^(?:" + rule.Pattern + ")")
		if err != nil {
			return nil, fmt.Errorf("terminal rule %s: %w", rule.Type, err)
		}
		compiled[i] = rule
		compiled[i].re = re
	}

	return &Tokenizer{
		Filename:        filename,
		Code:            code,
		Rules:           compiled,
		PrunedTerminals: pruned,
	}, nil
}

// SetLogger attaches a logger used for verbose match tracing.
func (t *Tokenizer) SetLogger(logger *logrus.Entry) {
	t.logger = logger
}

// Tokenize scans the whole input. Pruned terminals advance the offset but
// are not included in the result.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	var tokens []Token
	offset := 0

	for offset < len(t.Code) {
		length, typ, ok := t.matchAt(offset)
		if !ok {
			return nil, &TokenizeError{Filename: t.Filename, Code: t.Code, Offset: offset}
		}

		if !t.PrunedTerminals[typ] {
			tokens = append(tokens, Token{Type: typ, Offset: offset, Length: length})
		}
		offset += length
	}

	return tokens, nil
}

func (t *Tokenizer) matchAt(offset int) (length int, typ TokenType, ok bool) {
	for _, rule := range t.Rules {
		match := rule.re.FindString(t.Code[offset:])

		if t.Verbose && t.logger != nil {
			t.logger.WithFields(logrus.Fields{
				"offset":  offset,
				"rule":    rule.Type,
				"matched": len(match) > 0,
			}).Debug("tokenize attempt")
		}

		// A zero-length match is treated as no match, otherwise the
		// tokenizer would not advance.
		if len(match) > 0 {
			return len(match), rule.Type, true
		}
	}
	return 0, "", false
}
