// Package render produces human-readable output for parse trees and
// parse diagnostics.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/grovetools/gram/parser"
	"github.com/grovetools/gram/tokenizer"
	"github.com/grovetools/gram/tui/theme"
)

const maxValueLen = 40

// Positioned is implemented by errors that point at a location in source
// text: tokenizer.TokenizeError, parser.SyntaxError and grammar.Error.
type Positioned interface {
	Position() (filename string, line, column int)
	SourceLine() string
}

// Tree writes an indented parse tree. Leaf nodes show their source text.
func Tree(w io.Writer, tree *parser.Tree, tokens []tokenizer.Token, code string) {
	t := theme.DefaultTheme
	fmt.Fprintln(w, t.Symbol.Render(string(tree.Type)))
	writeChildren(w, tree, tokens, code, "")
}

func writeChildren(w io.Writer, tree *parser.Tree, tokens []tokenizer.Token, code string, prefix string) {
	t := theme.DefaultTheme

	for i, child := range tree.Children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(tree.Children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		label := t.Symbol.Render(string(child.Type))
		if len(child.Children) == 0 {
			label = t.Terminal.Render(string(child.Type)) + " " +
				t.Value.Render(quoteValue(child.Value(tokens, code)))
		}

		fmt.Fprintln(w, prefix+t.TreeLine.Render(connector)+label)
		writeChildren(w, child, tokens, code, childPrefix)
	}
}

func quoteValue(s string) string {
	if len(s) > maxValueLen {
		// Back up to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxValueLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return fmt.Sprintf("%q", s)
}

// Diagnostic writes an error with its source line and a caret marking the
// failing column:
//
//	input.txt:3:7: syntax error
//	  foo = ???
//	        ^
func Diagnostic(w io.Writer, err error) {
	t := theme.DefaultTheme

	pos, ok := err.(Positioned)
	if !ok {
		fmt.Fprintln(w, t.Error.Render(err.Error()))
		return
	}

	fmt.Fprintln(w, t.Error.Render(err.Error()))

	line := pos.SourceLine()
	_, _, column := position(pos)
	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", column-1), t.Error.Render("^"))
}

func position(pos Positioned) (string, int, int) {
	filename, line, column := pos.Position()
	if column < 1 {
		column = 1
	}
	return filename, line, column
}
