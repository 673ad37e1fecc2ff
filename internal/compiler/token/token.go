package token

import (
	"fmt"

	"github.com/arnavsurve/codelang/internal/compiler/value"
)

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "OPENPARENTHESIS"  // (
	TokenRParen    TokenType = "CLOSEPARENTHESIS" // )
	TokenAssign    TokenType = "EQUAL"            // =
	TokenPlus      TokenType = "PLUS"             // +
	TokenMinus     TokenType = "MINUS"            // -
	TokenAsterisk  TokenType = "STAR"             // *
	TokenSlash     TokenType = "SLASH"            // /
	TokenPercent   TokenType = "PERCENT"          // %
	TokenLess      TokenType = "LESSTHAN"         // <
	TokenGreater   TokenType = "GREATERTHAN"      // >
	TokenColon     TokenType = "COLON"            // :
	TokenComma     TokenType = "COMMA"            // ,
	TokenDollar    TokenType = "DOLLAR"           // $ (newline in DISPLAY)
	TokenAmpersand TokenType = "AMPERSAND"        // & (DISPLAY concatenation)

	// Two character tokens
	TokenLessEq    TokenType = "LESSEQUAL"    // <=
	TokenGreaterEq TokenType = "GREATEREQUAL" // >=
	TokenNotEqual  TokenType = "NOTEQUAL"     // <>
	TokenEqual     TokenType = "EQUALTO"      // ==

	// Keywords
	TokenBegin   TokenType = "BEGIN"
	TokenEnd     TokenType = "END"
	TokenCode    TokenType = "CODE"
	TokenIf      TokenType = "IF"
	TokenElse    TokenType = "ELSE"
	TokenWhile   TokenType = "WHILE"
	TokenDisplay TokenType = "DISPLAY"
	TokenScan    TokenType = "SCAN"
	TokenAnd     TokenType = "AND"
	TokenOr      TokenType = "OR"
	TokenNot     TokenType = "NOT"

	// Type keywords
	TokenInt   TokenType = "INT"
	TokenFloat TokenType = "FLOAT"
	TokenChar  TokenType = "CHAR"
	TokenBool  TokenType = "BOOL"

	// Literals & Identifiers
	TokenIntLit    TokenType = "INTLITERAL"    // 43
	TokenFloatLit  TokenType = "FLOATLITERAL"  // 4.3, .5
	TokenCharLit   TokenType = "CHARLITERAL"   // 'c', '[#]'
	TokenBoolLit   TokenType = "BOOLLITERAL"   // "TRUE", "FALSE"
	TokenStringLit TokenType = "STRINGLITERAL" // "..."
	TokenEscape    TokenType = "ESCAPE"        // [#]
	TokenIdent     TokenType = "IDENTIFIER"

	// Special
	TokenNewline TokenType = "NEWLINE"
	TokenEOF     TokenType = "ENDOFFILE"
	TokenError   TokenType = "ERROR"
)

// Token is one lexical unit. Value holds the typed literal for literal and
// escape tokens; Message holds the diagnostic for ERROR tokens.
type Token struct {
	Type    TokenType
	Literal string
	Value   value.Value
	Message string
	Line    int
	Column  int
}

func (t Token) IsTypeKeyword() bool {
	_, ok := typeKeywords[t.Type]
	return ok
}

func (t Token) IsLiteral() bool {
	switch t.Type {
	case TokenIntLit, TokenFloatLit, TokenCharLit, TokenBoolLit, TokenStringLit:
		return true
	}
	return false
}

// AsIdentifier returns a copy of t reclassified as an identifier; t itself is
// left untouched.
func (t Token) AsIdentifier() Token {
	return Token{Type: TokenIdent, Literal: t.Literal, Line: t.Line, Column: t.Column}
}

func (t Token) String() string {
	switch t.Type {
	case TokenNewline:
		return fmt.Sprintf("%d:%d %s", t.Line, t.Column, t.Type)
	case TokenError:
		return fmt.Sprintf("%d:%d %s %q (%s)", t.Line, t.Column, t.Type, t.Literal, t.Message)
	}
	if t.Value.IsSet() {
		return fmt.Sprintf("%d:%d %s %q = %s", t.Line, t.Column, t.Type, t.Literal, t.Value)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Literal)
}
