package grammar

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/grovetools/gram/parser"
	"github.com/grovetools/gram/pkg/profiling"
	"github.com/grovetools/gram/tokenizer"
)

// Load reads and parses a grammar file.
func Load(path string) (*Grammar, error) {
	defer profiling.Start("grammar.load").Stop()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(data))
}

// Parse parses grammar file text. The grammar file format is parsed by the
// gram engine itself using the bootstrap rules; the resulting tree is then
// transformed into a Grammar.
func Parse(filename, code string) (*Grammar, error) {
	// The format is line-oriented and every definition ends with a
	// newline, so tolerate a missing one on the last line.
	if code != "" && !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	tk, err := tokenizer.NewTokenizer(filename, code, bootstrapTerminalRules, bootstrapPrunedTerminals)
	if err != nil {
		return nil, err
	}
	tokens, err := tk.Tokenize()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &Error{
			Filename: filename,
			Code:     code,
			Offset:   0,
			Message:  fmt.Sprintf("empty grammar: no %s non-terminal defined", parser.RootSymbol),
		}
	}

	p := &parser.Parser{
		Filename: filename,
		Code:     code,
		Tokens:   tokens,
		Rules:    bootstrapRules,
	}
	tree, err := p.Parse()
	if err != nil {
		return nil, err
	}

	b := &builder{
		filename: filename,
		code:     code,
		tokens:   tokens,
		grammar: &Grammar{
			Rules:              map[parser.TokenType]parser.Expression{},
			PrunedTerminals:    map[tokenizer.TokenType]bool{},
			PrunedNonTerminals: map[parser.TokenType]bool{},
			Root:               parser.RootSymbol,
		},
	}
	return b.build(tree)
}

// builder transforms a bootstrap parse tree into a Grammar. It works in
// two passes: the first classifies every definition as terminal or
// non-terminal, the second resolves name references.
type builder struct {
	filename string
	code     string
	tokens   []tokenizer.Token
	grammar  *Grammar

	definitions []definition
	terminals   map[string]bool
	rules       map[string]bool
}

type definition struct {
	name   string
	body   *parser.Tree // EXPRESSION node
	offset int          // byte offset of the definition, for errors
}

func (b *builder) build(root *parser.Tree) (*Grammar, error) {
	var directives []*parser.Tree

	for _, line := range root.ChildrenOfType(symLine) {
		entry := line.Child(0)
		if entry == nil {
			continue
		}
		switch entry.Type {
		case symDefinition:
			if err := b.collectDefinition(entry); err != nil {
				return nil, err
			}
		case symDirective:
			directives = append(directives, entry)
		}
	}

	b.classify()

	for _, def := range b.definitions {
		if b.terminals[def.name] {
			if err := b.buildTerminal(def); err != nil {
				return nil, err
			}
			continue
		}
		expr, err := b.buildExpression(def.body)
		if err != nil {
			return nil, err
		}
		name := parser.TokenType(def.name)
		b.grammar.NonTerminals = append(b.grammar.NonTerminals, name)
		b.grammar.Rules[name] = expr
	}

	for _, directive := range directives {
		if err := b.applyDirective(directive); err != nil {
			return nil, err
		}
	}

	if _, ok := b.grammar.Rules[b.grammar.Root]; !ok {
		return nil, &Error{
			Filename: b.filename,
			Code:     b.code,
			Offset:   0,
			Message:  fmt.Sprintf("grammar does not define a %s non-terminal", b.grammar.Root),
		}
	}

	return b.grammar, nil
}

func (b *builder) collectDefinition(def *parser.Tree) error {
	nameNode := def.FirstOfType(symName)
	exprNode := def.FirstOfType(symExpression)
	name := b.value(nameNode)

	for _, existing := range b.definitions {
		if existing.name == name {
			return b.errorAt(nameNode, fmt.Sprintf("duplicate definition of %s", name))
		}
	}

	b.definitions = append(b.definitions, definition{
		name:   name,
		body:   exprNode,
		offset: nameNode.ByteOffset(b.tokens, b.code),
	})
	return nil
}

// classify splits definitions into terminals and non-terminals. A
// definition whose entire body is a single regex or literal is a terminal;
// everything else is a non-terminal.
func (b *builder) classify() {
	b.terminals = map[string]bool{}
	b.rules = map[string]bool{}

	for _, def := range b.definitions {
		if leaf := terminalLeaf(def.body); leaf != nil {
			b.terminals[def.name] = true
		} else {
			b.rules[def.name] = true
		}
	}
}

// terminalLeaf returns the single REGEX or LITERAL node if the expression
// consists of exactly that and nothing else, otherwise nil.
func terminalLeaf(expr *parser.Tree) *parser.Tree {
	sequences := expr.ChildrenOfType(symSequence)
	if len(sequences) != 1 {
		return nil
	}
	items := sequences[0].ChildrenOfType(symItem)
	if len(items) != 1 {
		return nil
	}
	leaf := items[0].Child(0)
	if leaf == nil {
		return nil
	}
	if leaf.Type == symRegex || leaf.Type == symLiteral {
		return leaf
	}
	return nil
}

func (b *builder) buildTerminal(def definition) error {
	leaf := terminalLeaf(def.body)

	var pattern, literal string
	switch leaf.Type {
	case symRegex:
		raw, err := UnescapeString(b.value(leaf.FirstOfType(symLiteral)))
		if err != nil {
			return b.errorAt(leaf, err.Error())
		}
		pattern = raw
	case symLiteral:
		raw, err := UnescapeString(b.value(leaf))
		if err != nil {
			return b.errorAt(leaf, err.Error())
		}
		literal = raw
		pattern = regexp.QuoteMeta(raw)
	}

	if strings.HasPrefix(pattern, "^") {
		return b.errorAt(leaf, "terminal pattern must not start with '^', anchoring is implicit")
	}
	if _, err := regexp.Compile("^(?:" + pattern + ")"); err != nil {
		return b.errorAt(leaf, fmt.Sprintf("invalid terminal pattern: %v", err))
	}

	b.grammar.Terminals = append(b.grammar.Terminals, TerminalDef{
		Name:    tokenizer.TokenType(def.name),
		Pattern: pattern,
		Literal: literal,
	})
	return nil
}

func (b *builder) buildExpression(expr *parser.Tree) (parser.Expression, error) {
	var alternatives []parser.Expression

	for _, seq := range expr.ChildrenOfType(symSequence) {
		built, err := b.buildSequence(seq)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, built)
	}

	if len(alternatives) == 1 {
		return alternatives[0], nil
	}
	return parser.Choice(alternatives...), nil
}

func (b *builder) buildSequence(seq *parser.Tree) (parser.Expression, error) {
	var parts []parser.Expression

	for _, item := range seq.ChildrenOfType(symItem) {
		built, err := b.buildItem(item)
		if err != nil {
			return nil, err
		}
		parts = append(parts, built)
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return parser.Concat(parts...), nil
}

func (b *builder) buildItem(item *parser.Tree) (parser.Expression, error) {
	child := item.Child(0)

	switch child.Type {
	case symGroup:
		inner, err := b.buildExpression(child.FirstOfType(symExpression))
		if err != nil {
			return nil, err
		}
		return b.applyQuantifier(inner, child.FirstOfType(symQuantifier))

	case symName:
		name := b.value(child)
		if b.terminals[name] {
			return parser.Term(parser.TokenType(name)), nil
		}
		if b.rules[name] {
			return parser.NonTerm(parser.TokenType(name)), nil
		}
		return nil, b.errorAt(child, fmt.Sprintf("reference to undefined symbol %s", name))

	case symLiteral, symRegex:
		// Inline literals and regexes inside non-terminal rules would
		// need anonymous terminal rules; require a named terminal
		// definition instead.
		return nil, b.errorAt(child, "literal and regex expressions are only allowed as whole terminal definitions; define a named terminal and reference it")
	}

	return nil, b.errorAt(item, "unsupported expression item")
}

func (b *builder) applyQuantifier(expr parser.Expression, quant *parser.Tree) (parser.Expression, error) {
	if quant == nil {
		return expr, nil
	}

	leaf := quant.Child(0)
	switch leaf.Type {
	case symQuestion:
		return parser.Opt(expr), nil
	case symStar:
		return parser.Repeat(expr), nil
	case symPlus:
		return parser.AtLeast(expr, 1), nil
	case symRepeatRange:
		value := b.value(leaf) // "{n,...}"
		n, err := strconv.Atoi(value[1:strings.IndexByte(value, ',')])
		if err != nil {
			return nil, b.errorAt(leaf, fmt.Sprintf("invalid repeat count: %v", err))
		}
		return parser.AtLeast(expr, n), nil
	}
	return nil, b.errorAt(quant, "unsupported quantifier")
}

func (b *builder) applyDirective(directive *parser.Tree) error {
	for _, nameNode := range directive.ChildrenOfType(symName) {
		name := b.value(nameNode)
		switch {
		case b.terminals[name]:
			b.grammar.PrunedTerminals[tokenizer.TokenType(name)] = true
		case b.rules[name]:
			b.grammar.PrunedNonTerminals[parser.TokenType(name)] = true
		default:
			return b.errorAt(nameNode, fmt.Sprintf("@prune references undefined symbol %s", name))
		}
	}
	return nil
}

func (b *builder) value(node *parser.Tree) string {
	return node.Value(b.tokens, b.code)
}

func (b *builder) errorAt(node *parser.Tree, message string) error {
	return &Error{
		Filename: b.filename,
		Code:     b.code,
		Offset:   node.ByteOffset(b.tokens, b.code),
		Message:  message,
	}
}
