package parser

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/gram/tokenizer"
)

// Parser parses a token stream against a set of non-terminal rules.
//
// NonTerminals optionally declares the full set of non-terminal symbols the
// grammar is supposed to define. When set, Parse verifies that the rule map
// and the declared set match exactly before parsing; this catches rules for
// symbols that were removed from a generated symbol list, and symbols that
// never got a rule.
type Parser struct {
	Filename           string
	Code               string
	Tokens             []tokenizer.Token
	Rules              map[TokenType]Expression
	NonTerminals       []TokenType
	PrunedNonTerminals map[TokenType]bool
	Root               TokenType
	Verbose            bool

	logger *logrus.Entry
}

// matchFailure is the internal backtracking signal. It carries the furthest
// token index a failed alternative reached, so the final error points at
// the most useful position.
type matchFailure struct {
	tokenIndex int
}

func (f *matchFailure) Error() string {
	return fmt.Sprintf("no match at token %d", f.tokenIndex)
}

// SetLogger attaches a logger used for verbose parse tracing.
func (p *Parser) SetLogger(logger *logrus.Entry) {
	p.logger = logger
}

// Parse parses the whole token stream starting from the root symbol. All
// tokens must be consumed; a trailing unparsed token is a syntax error at
// that token. The returned tree has untyped structural nodes removed and
// subtrees of pruned non-terminal types dropped.
func (p *Parser) Parse() (*Tree, error) {
	if err := p.checkRules(); err != nil {
		return nil, err
	}

	root := p.Root
	if root == "" {
		root = RootSymbol
	}

	tree, err := p.parse(&NonTerminalExpression{Type: root}, 0)
	if err != nil {
		return nil, p.syntaxError(err.(*matchFailure).tokenIndex)
	}

	if tree.TokenCount != len(p.Tokens) {
		return nil, p.syntaxError(tree.TokenCount)
	}

	pruned := PruneUntyped(tree)
	if pruned == nil {
		pruned = &Tree{Type: root}
	}

	if len(p.PrunedNonTerminals) > 0 {
		pruned = PruneSubtrees(pruned, p.PrunedNonTerminals)
		if pruned == nil {
			pruned = &Tree{Type: root}
		}
	}

	return pruned, nil
}

func (p *Parser) checkRules() error {
	root := p.Root
	if root == "" {
		root = RootSymbol
	}

	if _, ok := p.Rules[root]; !ok {
		return &RuleSetError{NoRoot: true}
	}

	if len(p.NonTerminals) == 0 {
		return nil
	}

	declared := make(map[TokenType]bool, len(p.NonTerminals))
	for _, t := range p.NonTerminals {
		declared[t] = true
	}

	var missing, unexpected []TokenType
	for t := range declared {
		if _, ok := p.Rules[t]; !ok {
			missing = append(missing, t)
		}
	}
	for t := range p.Rules {
		if !declared[t] {
			unexpected = append(unexpected, t)
		}
	}

	if len(missing) > 0 || len(unexpected) > 0 {
		sortTypes(missing)
		sortTypes(unexpected)
		return &RuleSetError{Missing: missing, Unexpected: unexpected}
	}

	return nil
}

func (p *Parser) parse(expr Expression, offset int) (*Tree, error) {
	p.trace(expr, offset)

	switch e := expr.(type) {
	case *TerminalExpression:
		return p.parseTerminal(e, offset)
	case *NonTerminalExpression:
		return p.parseNonTerminal(e, offset)
	case *ConcatenationExpression:
		return p.parseConcatenation(e, offset)
	case *ConjunctionExpression:
		return p.parseConjunction(e, offset)
	case *OptionalExpression:
		return p.parseOptional(e, offset)
	case *RepeatExpression:
		return p.parseRepeat(e, offset)
	}

	// Unreachable unless a new expression type is added without a case here.
	panic(fmt.Sprintf("parser: unknown expression type %T", expr))
}

func (p *Parser) parseTerminal(expr *TerminalExpression, offset int) (*Tree, error) {
	if offset >= len(p.Tokens) || TokenType(p.Tokens[offset].Type) != expr.Type {
		return nil, &matchFailure{tokenIndex: offset}
	}
	return &Tree{TokenOffset: offset, TokenCount: 1, Type: expr.Type}, nil
}

func (p *Parser) parseNonTerminal(expr *NonTerminalExpression, offset int) (*Tree, error) {
	rule, ok := p.Rules[expr.Type]
	if !ok {
		// checkRules catches this for declared symbols; an undeclared
		// reference inside a rule is a grammar construction bug.
		panic(fmt.Sprintf("parser: no rule for non-terminal %s", expr.Type))
	}

	child, err := p.parse(rule, offset)
	if err != nil {
		return nil, err
	}

	return &Tree{
		TokenOffset: child.TokenOffset,
		TokenCount:  child.TokenCount,
		Type:        expr.Type,
		Children:    []*Tree{child},
	}, nil
}

func (p *Parser) parseConcatenation(expr *ConcatenationExpression, offset int) (*Tree, error) {
	var children []*Tree
	childOffset := offset

	for _, child := range expr.Children {
		parsed, err := p.parse(child, childOffset)
		if err != nil {
			return nil, err
		}
		children = append(children, parsed)
		childOffset += parsed.TokenCount
	}

	return &Tree{
		TokenOffset: offset,
		TokenCount:  childOffset - offset,
		Children:    children,
	}, nil
}

func (p *Parser) parseConjunction(expr *ConjunctionExpression, offset int) (*Tree, error) {
	furthest := offset

	for _, child := range expr.Children {
		parsed, err := p.parse(child, offset)
		if err == nil {
			return &Tree{
				TokenOffset: parsed.TokenOffset,
				TokenCount:  parsed.TokenCount,
				Children:    []*Tree{parsed},
			}, nil
		}
		if f := err.(*matchFailure); f.tokenIndex > furthest {
			furthest = f.tokenIndex
		}
	}

	return nil, &matchFailure{tokenIndex: furthest}
}

func (p *Parser) parseOptional(expr *OptionalExpression, offset int) (*Tree, error) {
	parsed, err := p.parse(expr.Child, offset)
	if err != nil {
		return &Tree{TokenOffset: offset}, nil
	}

	return &Tree{
		TokenOffset: offset,
		TokenCount:  parsed.TokenCount,
		Children:    []*Tree{parsed},
	}, nil
}

func (p *Parser) parseRepeat(expr *RepeatExpression, offset int) (*Tree, error) {
	var children []*Tree
	childOffset := offset

	for {
		parsed, err := p.parse(expr.Child, childOffset)
		if err != nil {
			break
		}
		// A repeated empty match would loop forever.
		if parsed.TokenCount == 0 {
			break
		}
		children = append(children, parsed)
		childOffset += parsed.TokenCount
	}

	if len(children) < expr.MinRepeats {
		return nil, &matchFailure{tokenIndex: childOffset}
	}

	return &Tree{
		TokenOffset: offset,
		TokenCount:  childOffset - offset,
		Children:    children,
	}, nil
}

func (p *Parser) syntaxError(tokenIndex int) *SyntaxError {
	offset := len(p.Code)
	if tokenIndex < len(p.Tokens) {
		offset = p.Tokens[tokenIndex].Offset
	}
	return &SyntaxError{Filename: p.Filename, Code: p.Code, Offset: offset}
}

func (p *Parser) trace(expr Expression, offset int) {
	if !p.Verbose || p.logger == nil {
		return
	}

	exprType := "<none>"
	switch e := expr.(type) {
	case *TerminalExpression:
		exprType = string(e.Type)
	case *NonTerminalExpression:
		exprType = string(e.Type)
	}

	tokenType := "<EOF>"
	if offset < len(p.Tokens) {
		tokenType = string(p.Tokens[offset].Type)
	}

	p.logger.WithFields(logrus.Fields{
		"offset": offset,
		"token":  tokenType,
		"expr":   exprType,
	}).Debug("parse attempt")
}

func sortTypes(types []TokenType) {
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
}
