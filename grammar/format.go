package grammar

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/grovetools/gram/parser"
)

// Format renders the grammar in canonical form. Terminal definitions keep
// their declaration order because it decides tokenizer match priority;
// non-terminals are sorted by name. Parsing the output yields an
// equivalent grammar.
func (g *Grammar) Format() string {
	var b strings.Builder

	b.WriteString("// Canonical grammar file, regenerate with `gram fmt`.\n")
	fmt.Fprintf(&b, "// The root symbol is %s.\n\n", g.Root)

	for _, def := range g.Terminals {
		if def.Literal != "" {
			fmt.Fprintf(&b, "%s = %s\n", def.Name, EscapeString(def.Literal))
		} else {
			fmt.Fprintf(&b, "%s = regex(%s)\n", def.Name, EscapeString(def.Pattern))
		}
	}

	if len(g.Terminals) > 0 && len(g.NonTerminals) > 0 {
		b.WriteString("\n")
	}

	names := make([]parser.TokenType, len(g.NonTerminals))
	copy(names, g.NonTerminals)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		fmt.Fprintf(&b, "%s = %s\n", name, renderExpression(g.Rules[name], 0))
	}

	if pruned := g.prunedNames(); len(pruned) > 0 {
		fmt.Fprintf(&b, "\n@prune %s\n", strings.Join(pruned, " "))
	}

	return b.String()
}

func (g *Grammar) prunedNames() []string {
	var names []string
	for name := range g.PrunedTerminals {
		names = append(names, string(name))
	}
	for name := range g.PrunedNonTerminals {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// renderExpression produces the BNF-like text for an expression. Choice is
// parenthesized except at the top of a rule; quantified expressions carry
// their own parentheses.
func renderExpression(expr parser.Expression, depth int) string {
	switch e := expr.(type) {
	case *parser.TerminalExpression:
		return string(e.Type)

	case *parser.NonTerminalExpression:
		return string(e.Type)

	case *parser.ConcatenationExpression:
		parts := make([]string, len(e.Children))
		for i, child := range e.Children {
			parts[i] = renderExpression(child, depth+1)
		}
		return strings.Join(parts, " ")

	case *parser.ConjunctionExpression:
		parts := make([]string, len(e.Children))
		for i, child := range e.Children {
			parts[i] = renderExpression(child, depth+1)
		}
		joined := strings.Join(parts, " | ")
		if depth != 0 {
			return "(" + joined + ")"
		}
		return joined

	case *parser.OptionalExpression:
		return "(" + renderExpression(e.Child, 0) + ")?"

	case *parser.RepeatExpression:
		inner := "(" + renderExpression(e.Child, 0) + ")"
		switch e.MinRepeats {
		case 0:
			return inner + "*"
		case 1:
			return inner + "+"
		default:
			return fmt.Sprintf("%s{%d,...}", inner, e.MinRepeats)
		}
	}

	panic(fmt.Sprintf("grammar: unknown expression type %T", expr))
}

// CheckStale compares the canonical formatting of g against the file at
// path. It returns whether the file is out of date along with the expected
// contents. A missing file counts as stale.
func CheckStale(path string, g *Grammar) (bool, string, error) {
	formatted := g.Format()

	current, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, formatted, nil
		}
		return false, "", err
	}

	return string(current) != formatted, formatted, nil
}
