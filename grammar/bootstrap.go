package grammar

import (
	"github.com/grovetools/gram/parser"
	"github.com/grovetools/gram/tokenizer"
)

// Terminal symbols of the grammar file format.
const (
	tokComment     tokenizer.TokenType = "COMMENT"
	tokPrune       tokenizer.TokenType = "PRUNE"
	tokRegexStart  tokenizer.TokenType = "REGEX_START"
	tokName        tokenizer.TokenType = "NAME"
	tokEquals      tokenizer.TokenType = "EQUALS"
	tokPipe        tokenizer.TokenType = "PIPE"
	tokLParen      tokenizer.TokenType = "LPAREN"
	tokRParen      tokenizer.TokenType = "RPAREN"
	tokQuestion    tokenizer.TokenType = "QUESTION"
	tokStar        tokenizer.TokenType = "STAR"
	tokPlus        tokenizer.TokenType = "PLUS"
	tokRepeatRange tokenizer.TokenType = "REPEAT_RANGE"
	tokLiteral     tokenizer.TokenType = "LITERAL"
	tokNewline     tokenizer.TokenType = "NEWLINE"
	tokWhitespace  tokenizer.TokenType = "WHITESPACE"
)

// Non-terminal symbols of the grammar file format.
const (
	symRoot        parser.TokenType = parser.RootSymbol
	symLine        parser.TokenType = "LINE"
	symDefinition  parser.TokenType = "DEFINITION"
	symDirective   parser.TokenType = "PRUNE_DIRECTIVE"
	symExpression  parser.TokenType = "EXPRESSION"
	symSequence    parser.TokenType = "SEQUENCE"
	symItem        parser.TokenType = "ITEM"
	symGroup       parser.TokenType = "GROUP"
	symQuantifier  parser.TokenType = "QUANTIFIER"
	symRegex       parser.TokenType = "REGEX"
	symNewline     parser.TokenType = "NEWLINE"
	symName        parser.TokenType = "NAME"
	symEquals      parser.TokenType = "EQUALS"
	symPipe        parser.TokenType = "PIPE"
	symLParen      parser.TokenType = "LPAREN"
	symRParen      parser.TokenType = "RPAREN"
	symLiteral     parser.TokenType = "LITERAL"
	symPrune       parser.TokenType = "PRUNE"
	symRegexStart  parser.TokenType = "REGEX_START"
	symQuestion    parser.TokenType = "QUESTION"
	symStar        parser.TokenType = "STAR"
	symPlus        parser.TokenType = "PLUS"
	symRepeatRange parser.TokenType = "REPEAT_RANGE"
)

// bootstrapTerminalRules tokenizes grammar files. The first matching rule
// wins at each position.
var bootstrapTerminalRules = []tokenizer.TerminalRule{
	{Type: tokComment, Pattern: `//[^\n]*`},
	{Type: tokPrune, Pattern: `@prune`},
	{Type: tokRegexStart, Pattern: `regex\(`},
	{Type: tokName, Pattern: `[A-Z][A-Z0-9_]*`},
	{Type: tokEquals, Pattern: `=`},
	{Type: tokPipe, Pattern: `\|`},
	{Type: tokLParen, Pattern: `\(`},
	{Type: tokRParen, Pattern: `\)`},
	{Type: tokQuestion, Pattern: `\?`},
	{Type: tokStar, Pattern: `\*`},
	{Type: tokPlus, Pattern: `\+`},
	{Type: tokRepeatRange, Pattern: `\{[0-9]+,\.\.\.\}`},
	{Type: tokLiteral, Pattern: `"(?:[^"\\\n]|\\.)*"`},
	{Type: tokNewline, Pattern: `\n`},
	{Type: tokWhitespace, Pattern: `[ \t]+`},
}

// Comments and whitespace never reach the parser. Newlines do: the format
// is line-oriented.
var bootstrapPrunedTerminals = map[tokenizer.TokenType]bool{
	tokComment:    true,
	tokWhitespace: true,
}

// bootstrapRules is the grammar of grammar files, in BNF-like form:
//
//	ROOT            = (LINE)*
//	LINE            = DEFINITION | PRUNE_DIRECTIVE | NEWLINE
//	DEFINITION      = NAME EQUALS EXPRESSION NEWLINE
//	PRUNE_DIRECTIVE = PRUNE (NAME)+ NEWLINE
//	EXPRESSION      = SEQUENCE (PIPE SEQUENCE)*
//	SEQUENCE        = (ITEM)+
//	ITEM            = GROUP | REGEX | LITERAL | NAME
//	GROUP           = LPAREN EXPRESSION RPAREN (QUANTIFIER)?
//	QUANTIFIER      = QUESTION | STAR | PLUS | REPEAT_RANGE
//	REGEX           = REGEX_START LITERAL RPAREN
var bootstrapRules = map[parser.TokenType]parser.Expression{
	symRoot: parser.Repeat(parser.NonTerm(symLine)),
	symLine: parser.Choice(
		parser.NonTerm(symDefinition),
		parser.NonTerm(symDirective),
		parser.Term(symNewline),
	),
	symDefinition: parser.Concat(
		parser.Term(symName),
		parser.Term(symEquals),
		parser.NonTerm(symExpression),
		parser.Term(symNewline),
	),
	symDirective: parser.Concat(
		parser.Term(symPrune),
		parser.AtLeast(parser.Term(symName), 1),
		parser.Term(symNewline),
	),
	symExpression: parser.Concat(
		parser.NonTerm(symSequence),
		parser.Repeat(parser.Concat(
			parser.Term(symPipe),
			parser.NonTerm(symSequence),
		)),
	),
	symSequence: parser.AtLeast(parser.NonTerm(symItem), 1),
	symItem: parser.Choice(
		parser.NonTerm(symGroup),
		parser.NonTerm(symRegex),
		parser.Term(symLiteral),
		parser.Term(symName),
	),
	symGroup: parser.Concat(
		parser.Term(symLParen),
		parser.NonTerm(symExpression),
		parser.Term(symRParen),
		parser.Opt(parser.NonTerm(symQuantifier)),
	),
	symQuantifier: parser.Choice(
		parser.Term(symQuestion),
		parser.Term(symStar),
		parser.Term(symPlus),
		parser.Term(symRepeatRange),
	),
	symRegex: parser.Concat(
		parser.Term(symRegexStart),
		parser.Term(symLiteral),
		parser.Term(symRParen),
	),
}
