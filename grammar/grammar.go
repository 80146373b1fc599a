package grammar

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/gram/internal/textpos"
	"github.com/grovetools/gram/parser"
	"github.com/grovetools/gram/pkg/profiling"
	"github.com/grovetools/gram/tokenizer"
)

// TerminalDef is a terminal symbol definition. Pattern is the regular
// expression the tokenizer matches. Literal holds the original quoted text
// when the terminal was defined as a literal rather than a regex, so
// formatting can round-trip the definition.
type TerminalDef struct {
	Name    tokenizer.TokenType
	Pattern string
	Literal string
}

// Rule returns the tokenizer rule for this terminal.
func (d TerminalDef) Rule() tokenizer.TerminalRule {
	return tokenizer.TerminalRule{Type: d.Name, Pattern: d.Pattern}
}

// Grammar is a parsed grammar file: an ordered terminal rule list, a
// non-terminal rule map, and the prune sets. Terminal order is declaration
// order, which decides tokenizer match priority.
type Grammar struct {
	Terminals          []TerminalDef
	NonTerminals       []parser.TokenType
	Rules              map[parser.TokenType]parser.Expression
	PrunedTerminals    map[tokenizer.TokenType]bool
	PrunedNonTerminals map[parser.TokenType]bool
	Root               parser.TokenType

	trace *logrus.Entry
}

// SetTraceLogger enables per-attempt match tracing. Tokenize and Parse
// log every rule attempt through the given logger at debug level.
func (g *Grammar) SetTraceLogger(logger *logrus.Entry) {
	g.trace = logger
}

// TerminalRules returns the tokenizer rules in declaration order.
func (g *Grammar) TerminalRules() []tokenizer.TerminalRule {
	rules := make([]tokenizer.TerminalRule, len(g.Terminals))
	for i, def := range g.Terminals {
		rules[i] = def.Rule()
	}
	return rules
}

// Tokenize scans source text with this grammar's terminal rules.
func (g *Grammar) Tokenize(filename, code string) ([]tokenizer.Token, error) {
	tk, err := tokenizer.NewTokenizer(filename, code, g.TerminalRules(), g.PrunedTerminals)
	if err != nil {
		return nil, err
	}
	if g.trace != nil {
		tk.Verbose = true
		tk.SetLogger(g.trace)
	}
	return tk.Tokenize()
}

// Parse tokenizes and parses source text against this grammar. The token
// slice is returned alongside the tree so callers can recover node values.
func (g *Grammar) Parse(filename, code string) (*parser.Tree, []tokenizer.Token, error) {
	defer profiling.Start("grammar.parse").Stop()

	tokens, err := g.Tokenize(filename, code)
	if err != nil {
		return nil, nil, err
	}

	p := &parser.Parser{
		Filename:           filename,
		Code:               code,
		Tokens:             tokens,
		Rules:              g.Rules,
		NonTerminals:       g.NonTerminals,
		PrunedNonTerminals: g.PrunedNonTerminals,
		Root:               g.Root,
	}
	if g.trace != nil {
		p.Verbose = true
		p.SetLogger(g.trace)
	}

	tree, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	return tree, tokens, nil
}

// Validate re-checks the grammar's internal consistency: compilable
// terminal patterns, resolvable rule references, and a defined root.
func (g *Grammar) Validate() error {
	for _, def := range g.Terminals {
		if _, err := regexp.Compile("^(?:" + def.Pattern + ")"); err != nil {
			return fmt.Errorf("terminal %s: %w", def.Name, err)
		}
	}

	if _, ok := g.Rules[g.Root]; !ok {
		return fmt.Errorf("grammar does not define root symbol %s", g.Root)
	}

	terminals := make(map[tokenizer.TokenType]bool, len(g.Terminals))
	for _, def := range g.Terminals {
		terminals[def.Name] = true
	}

	for name, rule := range g.Rules {
		if err := g.checkRefs(name, rule, terminals); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grammar) checkRefs(name parser.TokenType, expr parser.Expression, terminals map[tokenizer.TokenType]bool) error {
	switch e := expr.(type) {
	case *parser.TerminalExpression:
		if !terminals[tokenizer.TokenType(e.Type)] {
			return fmt.Errorf("rule %s references undefined terminal %s", name, e.Type)
		}
	case *parser.NonTerminalExpression:
		if _, ok := g.Rules[e.Type]; !ok {
			return fmt.Errorf("rule %s references undefined non-terminal %s", name, e.Type)
		}
	case *parser.ConcatenationExpression:
		for _, child := range e.Children {
			if err := g.checkRefs(name, child, terminals); err != nil {
				return err
			}
		}
	case *parser.ConjunctionExpression:
		for _, child := range e.Children {
			if err := g.checkRefs(name, child, terminals); err != nil {
				return err
			}
		}
	case *parser.OptionalExpression:
		return g.checkRefs(name, e.Child, terminals)
	case *parser.RepeatExpression:
		return g.checkRefs(name, e.Child, terminals)
	}
	return nil
}

// Error is a semantic error in a grammar file, with a source position.
type Error struct {
	Filename string
	Code     string
	Offset   int
	Message  string
}

func (e *Error) Error() string {
	line, col := textpos.LineColumn(e.Code, e.Offset)
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, line, col, e.Message)
}

// SourceLine returns the line of the grammar file containing the error.
func (e *Error) SourceLine() string {
	return textpos.SourceLine(e.Code, e.Offset)
}

// Position returns the error location for diagnostic rendering.
func (e *Error) Position() (string, int, int) {
	line, col := textpos.LineColumn(e.Code, e.Offset)
	return e.Filename, line, col
}
