package lexer

import (
	"unicode"

	"github.com/arnavsurve/codelang/internal/compiler/token"
)

type Lexer struct {
	input        []rune
	position     int  // current char index
	readPosition int  // next char index
	ch           rune // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: []rune(input), line: 1, column: 0}
	l.readChar()
	if l.column == 0 {
		l.column = 1 // empty input
	}
	return l
}

// readChar advances to the next character and keeps the column in step.
// Line changes happen in NextToken when the NEWLINE token is emitted.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPosition]
	}

	if l.position < len(l.input) {
		l.column++
	}
	l.position = l.readPosition
	l.readPosition++
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token. It never fails: malformed input comes back
// as a TokenError carrying a message, and once the input is exhausted every
// call returns TokenEOF.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine := l.line
	startCol := l.column

	if l.atEOF() {
		return l.newToken(token.TokenEOF, "", startLine, startCol)
	}

	switch l.ch {
	case '\n':
		tok := l.newToken(token.TokenNewline, "\n", startLine, startCol)
		l.readChar()
		l.line++
		l.column = 1
		return tok
	case '#':
		// Comment runs to end of line; the newline itself is the next token
		l.readComment()
		return l.NextToken()
	case '"':
		return l.readQuoted(startLine, startCol)
	case '\'':
		return l.readCharLiteral(startLine, startCol)
	case '[':
		return l.readEscape(startLine, startCol)
	case '>':
		if l.peekChar() == '=' {
			return l.readTwoCharToken(token.TokenGreaterEq, startLine, startCol)
		}
		return l.readOneCharToken(token.TokenGreater, startLine, startCol)
	case '<':
		switch l.peekChar() {
		case '=':
			return l.readTwoCharToken(token.TokenLessEq, startLine, startCol)
		case '>':
			return l.readTwoCharToken(token.TokenNotEqual, startLine, startCol)
		}
		return l.readOneCharToken(token.TokenLess, startLine, startCol)
	case '=':
		if l.peekChar() == '=' {
			return l.readTwoCharToken(token.TokenEqual, startLine, startCol)
		}
		return l.readOneCharToken(token.TokenAssign, startLine, startCol)
	}

	if tokType, ok := singleCharTokens[l.ch]; ok {
		return l.readOneCharToken(tokType, startLine, startCol)
	}

	switch {
	case isLetter(l.ch):
		return l.readWord(startLine, startCol)
	case isDigit(l.ch) || l.ch == '.':
		return l.readNumber(startLine, startCol)
	}

	tok := l.newToken(token.TokenError, string(l.ch), startLine, startCol)
	tok.Message = "Unknown symbol"
	l.readChar()
	return tok
}

var singleCharTokens = map[rune]token.TokenType{
	'+': token.TokenPlus,
	'-': token.TokenMinus,
	'*': token.TokenAsterisk,
	'/': token.TokenSlash,
	'%': token.TokenPercent,
	'$': token.TokenDollar,
	'&': token.TokenAmpersand,
	'(': token.TokenLParen,
	')': token.TokenRParen,
	',': token.TokenComma,
	':': token.TokenColon,
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) readOneCharToken(tokenType token.TokenType, line, col int) token.Token {
	tok := l.newToken(tokenType, string(l.ch), line, col)
	l.readChar()
	return tok
}

func (l *Lexer) readTwoCharToken(tokenType token.TokenType, line, col int) token.Token {
	literal := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return l.newToken(tokenType, literal, line, col)
}

// skipWhitespace skips horizontal whitespace only. '\r' is treated as
// whitespace so CRLF sources lex like LF sources.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

func (l *Lexer) readWord(line, col int) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	word := string(l.input[start:l.position])

	tokType, msg := token.LookupWord(word)
	tok := l.newToken(tokType, word, line, col)
	tok.Message = msg
	return tok
}

func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	text := string(l.input[start:l.position])

	tokType, val, msg := token.ClassifyNumber(text)
	return token.Token{Type: tokType, Literal: text, Value: val, Message: msg, Line: line, Column: col}
}

// readDelimited consumes an opening delimiter and then characters up to the
// matching delimiter, stopping early when the following character is
// whitespace. The early stop keeps a stray quote from swallowing the rest of
// the line.
func (l *Lexer) readDelimited(delim rune) string {
	start := l.position
	l.readChar() // Consume opening delimiter

	for l.ch != delim && l.ch != '\n' && !l.atEOF() && !isSpace(l.peekChar()) {
		l.readChar()
	}
	if !l.atEOF() && l.ch != '\n' {
		l.readChar() // Consume closing delimiter (or the last char before whitespace)
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readQuoted(line, col int) token.Token {
	text := l.readDelimited('"')
	tokType, val, msg := token.ClassifyQuoted(text)
	return token.Token{Type: tokType, Literal: text, Value: val, Message: msg, Line: line, Column: col}
}

func (l *Lexer) readCharLiteral(line, col int) token.Token {
	text := l.readDelimited('\'')
	tokType, val, msg := token.ClassifyChar(text)
	return token.Token{Type: tokType, Literal: text, Value: val, Message: msg, Line: line, Column: col}
}

// readEscape reads a bracketed escape code such as [#] up to the next
// whitespace.
func (l *Lexer) readEscape(line, col int) token.Token {
	start := l.position
	for !l.atEOF() && !isSpace(l.ch) {
		l.readChar()
	}
	text := string(l.input[start:l.position])

	tokType, val, msg := token.ClassifyEscape(text)
	return token.Token{Type: tokType, Literal: text, Value: val, Message: msg, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch rune) bool {
	return unicode.IsSpace(ch)
}
