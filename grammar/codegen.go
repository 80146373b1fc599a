package grammar

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/grovetools/gram/parser"
)

// codegenTemplate renders a grammar as a standalone Go source file. The
// generated file depends only on the parser and tokenizer packages, so a
// project can ship its grammar as compiled rules without loading the
// grammar file at runtime.
var codegenTemplate = template.Must(template.New("grammar").Parse(`// Code generated by gram generate; DO NOT EDIT.

package {{.Package}}

import (
	"github.com/grovetools/gram/parser"
	"github.com/grovetools/gram/tokenizer"
)

// Terminal symbols.
const (
{{- range .Terminals}}
	{{.GoName}} tokenizer.TokenType = "{{.Name}}"
{{- end}}
)

// Non-terminal symbols.
const (
{{- range .NonTerminals}}
	{{.GoName}} parser.TokenType = "{{.Name}}"
{{- end}}
)

// TerminalRules tokenizes input in declaration order.
var TerminalRules = []tokenizer.TerminalRule{
{{- range .Terminals}}
	{Type: {{.GoName}}, Pattern: {{.Pattern}}},
{{- end}}
}

// PrunedTerminals are matched but not emitted as tokens.
var PrunedTerminals = map[tokenizer.TokenType]bool{
{{- range .PrunedTerminals}}
	{{.}}: true,
{{- end}}
}

// NonTerminals declares every non-terminal symbol, for rule set checking.
var NonTerminals = []parser.TokenType{
{{- range .NonTerminals}}
	{{.GoName}},
{{- end}}
}

// PrunedNonTerminals are dropped from parse trees.
var PrunedNonTerminals = map[parser.TokenType]bool{
{{- range .PrunedNonTerminals}}
	{{.}}: true,
{{- end}}
}

// Rules maps each non-terminal to its expression.
var Rules = map[parser.TokenType]parser.Expression{
{{- range .Rules}}
	{{.GoName}}: {{.Expr}},
{{- end}}
}
`))

type codegenSymbol struct {
	Name    string
	GoName  string
	Pattern string
	Expr    string
}

type codegenData struct {
	Package            string
	Terminals          []codegenSymbol
	NonTerminals       []codegenSymbol
	PrunedTerminals    []string
	PrunedNonTerminals []string
	Rules              []codegenSymbol
}

// GenerateGo renders the grammar as Go source declaring its symbols,
// terminal rules, prune sets, and rule map.
func (g *Grammar) GenerateGo(pkg string) ([]byte, error) {
	data := codegenData{Package: pkg}

	for _, def := range g.Terminals {
		data.Terminals = append(data.Terminals, codegenSymbol{
			Name:    string(def.Name),
			GoName:  goSymbolName("Token", string(def.Name)),
			Pattern: quotePattern(def.Pattern),
		})
	}

	for _, name := range g.NonTerminals {
		data.NonTerminals = append(data.NonTerminals, codegenSymbol{
			Name:   string(name),
			GoName: goSymbolName("Symbol", string(name)),
		})
	}

	for name := range g.PrunedTerminals {
		data.PrunedTerminals = append(data.PrunedTerminals, goSymbolName("Token", string(name)))
	}
	sort.Strings(data.PrunedTerminals)

	for name := range g.PrunedNonTerminals {
		data.PrunedNonTerminals = append(data.PrunedNonTerminals, goSymbolName("Symbol", string(name)))
	}
	sort.Strings(data.PrunedNonTerminals)

	names := make([]parser.TokenType, len(g.NonTerminals))
	copy(names, g.NonTerminals)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		data.Rules = append(data.Rules, codegenSymbol{
			GoName: goSymbolName("Symbol", string(name)),
			Expr:   renderGoExpression(g.Rules[name]),
		})
	}

	var b strings.Builder
	if err := codegenTemplate.Execute(&b, data); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// goSymbolName converts an UPPER_SNAKE symbol name to a prefixed CamelCase
// Go identifier: "TOKEN_NAME" becomes "TokenTokenName" for prefix "Token".
func goSymbolName(prefix, name string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

// quotePattern prefers raw string literals for regex patterns, falling
// back to interpreted strings when the pattern contains a backquote.
func quotePattern(pattern string) string {
	if !strings.ContainsRune(pattern, '`') {
		return "`" + pattern + "`"
	}
	return fmt.Sprintf("%q", pattern)
}

func renderGoExpression(expr parser.Expression) string {
	switch e := expr.(type) {
	case *parser.TerminalExpression:
		return fmt.Sprintf("parser.Term(%q)", string(e.Type))

	case *parser.NonTerminalExpression:
		return fmt.Sprintf("parser.NonTerm(%q)", string(e.Type))

	case *parser.ConcatenationExpression:
		return "parser.Concat(" + renderGoChildren(e.Children) + ")"

	case *parser.ConjunctionExpression:
		return "parser.Choice(" + renderGoChildren(e.Children) + ")"

	case *parser.OptionalExpression:
		return "parser.Opt(" + renderGoExpression(e.Child) + ")"

	case *parser.RepeatExpression:
		if e.MinRepeats == 0 {
			return "parser.Repeat(" + renderGoExpression(e.Child) + ")"
		}
		return fmt.Sprintf("parser.AtLeast(%s, %d)", renderGoExpression(e.Child), e.MinRepeats)
	}

	panic(fmt.Sprintf("grammar: unknown expression type %T", expr))
}

func renderGoChildren(children []parser.Expression) string {
	parts := make([]string, len(children))
	for i, child := range children {
		parts[i] = renderGoExpression(child)
	}
	return strings.Join(parts, ", ")
}
