// Package parser implements a generic recursive-descent parser driven by
// grammar expressions. A grammar is a map from non-terminal symbols to
// expressions; parsing a token stream produces a Tree whose nodes reference
// spans of the original token slice.
package parser

// TokenType identifies a terminal or non-terminal symbol by name.
// Symbol names are upper-case with underscores, e.g. "ROOT" or "TOKEN_NAME".
type TokenType string

// RootSymbol is the non-terminal every grammar must define.
const RootSymbol TokenType = "ROOT"

// Expression is a node in a grammar rule. Expressions are built with the
// constructor functions below and evaluated by Parser.
type Expression interface {
	expression()
}

// TerminalExpression matches a single token of the given type.
type TerminalExpression struct {
	Type TokenType
}

// NonTerminalExpression expands to the rule registered for its type.
type NonTerminalExpression struct {
	Type TokenType
}

// ConcatenationExpression matches its children in order.
type ConcatenationExpression struct {
	Children []Expression
}

// ConjunctionExpression matches the first child that parses. Choice is
// ordered: earlier alternatives win even if a later one would match more
// tokens.
type ConjunctionExpression struct {
	Children []Expression
}

// OptionalExpression matches its child zero or one times.
type OptionalExpression struct {
	Child Expression
}

// RepeatExpression matches its child as many times as possible, requiring
// at least MinRepeats matches.
type RepeatExpression struct {
	Child      Expression
	MinRepeats int
}

func (*TerminalExpression) expression()      {}
func (*NonTerminalExpression) expression()   {}
func (*ConcatenationExpression) expression() {}
func (*ConjunctionExpression) expression()   {}
func (*OptionalExpression) expression()      {}
func (*RepeatExpression) expression()        {}

// Term matches a single token of type t.
func Term(t TokenType) *TerminalExpression {
	return &TerminalExpression{Type: t}
}

// NonTerm expands the rule for t.
func NonTerm(t TokenType) *NonTerminalExpression {
	return &NonTerminalExpression{Type: t}
}

// Concat matches the given expressions in order.
func Concat(children ...Expression) *ConcatenationExpression {
	return &ConcatenationExpression{Children: children}
}

// Choice matches the first of the given expressions that parses.
func Choice(children ...Expression) *ConjunctionExpression {
	return &ConjunctionExpression{Children: children}
}

// Opt matches child zero or one times.
func Opt(child Expression) *OptionalExpression {
	return &OptionalExpression{Child: child}
}

// Repeat matches child zero or more times.
func Repeat(child Expression) *RepeatExpression {
	return &RepeatExpression{Child: child}
}

// AtLeast matches child at least min times.
func AtLeast(child Expression, min int) *RepeatExpression {
	return &RepeatExpression{Child: child, MinRepeats: min}
}
