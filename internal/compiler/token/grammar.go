package token

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arnavsurve/codelang/internal/compiler/value"
)

// keywords maps reserved words to their token types. Lookup is case-sensitive.
var keywords = map[string]TokenType{
	"BEGIN":   TokenBegin,
	"END":     TokenEnd,
	"CODE":    TokenCode,
	"IF":      TokenIf,
	"ELSE":    TokenElse,
	"WHILE":   TokenWhile,
	"DISPLAY": TokenDisplay,
	"SCAN":    TokenScan,
	"AND":     TokenAnd,
	"OR":      TokenOr,
	"NOT":     TokenNot,
	"INT":     TokenInt,
	"FLOAT":   TokenFloat,
	"CHAR":    TokenChar,
	"BOOL":    TokenBool,
}

var typeKeywords = map[TokenType]value.DataType{
	TokenInt:   value.Int,
	TokenFloat: value.Float,
	TokenChar:  value.Char,
	TokenBool:  value.Bool,
}

// LookupWord classifies a scanned word. Words that spell a keyword with the
// wrong case come back as TokenError with a message, so that the parser can
// decide whether they are really identifiers.
func LookupWord(word string) (TokenType, string) {
	if tokType, ok := keywords[word]; ok {
		return tokType, ""
	}
	if tokType, ok := keywords[strings.ToUpper(word)]; ok {
		if _, isType := typeKeywords[tokType]; isType {
			return TokenError, "Invalid data type."
		}
		return TokenError, "Invalid keyword."
	}
	return TokenIdent, ""
}

// DataTypeOf maps a type keyword to the declared data type.
func DataTypeOf(t TokenType) value.DataType {
	return typeKeywords[t]
}

// Precedence levels, lowest binding first.
const (
	_ int = iota
	PrecLowest
	PrecLogical    // AND, OR
	PrecComparison // < > <= >= == <>
	PrecSum        // + -
	PrecProduct    // * / %
)

var precedences = map[TokenType]int{
	TokenAnd:       PrecLogical,
	TokenOr:        PrecLogical,
	TokenLess:      PrecComparison,
	TokenGreater:   PrecComparison,
	TokenLessEq:    PrecComparison,
	TokenGreaterEq: PrecComparison,
	TokenEqual:     PrecComparison,
	TokenNotEqual:  PrecComparison,
	TokenPlus:      PrecSum,
	TokenMinus:     PrecSum,
	TokenAsterisk:  PrecProduct,
	TokenSlash:     PrecProduct,
	TokenPercent:   PrecProduct,
}

// Precedence returns the binary precedence of t, or 0 if t is not a binary
// operator.
func Precedence(t TokenType) int {
	return precedences[t]
}

var binaryOps = map[TokenType]value.Op{
	TokenPlus:      value.OpAdd,
	TokenMinus:     value.OpSub,
	TokenAsterisk:  value.OpMul,
	TokenSlash:     value.OpDiv,
	TokenPercent:   value.OpMod,
	TokenLess:      value.OpLess,
	TokenGreater:   value.OpGreater,
	TokenLessEq:    value.OpLessEq,
	TokenGreaterEq: value.OpGreaterEq,
	TokenEqual:     value.OpEqual,
	TokenNotEqual:  value.OpNotEqual,
	TokenAnd:       value.OpAnd,
	TokenOr:        value.OpOr,
}

func BinaryOp(t TokenType) (value.Op, bool) {
	op, ok := binaryOps[t]
	return op, ok
}

func UnaryOp(t TokenType) (value.Op, bool) {
	switch t {
	case TokenPlus:
		return value.OpAdd, true
	case TokenMinus:
		return value.OpSub, true
	case TokenNot:
		return value.OpNot, true
	}
	return value.OpInvalid, false
}

// Coercible is the numeric-coercion predicate shared by every phase.
func Coercible(declared, actual value.DataType) bool {
	return value.Compatible(declared, actual)
}

// --- Literal patterns ---

var (
	intPattern    = regexp.MustCompile(`^\d+$`)
	floatPattern  = regexp.MustCompile(`^\d*\.\d+$`)
	boolPattern   = regexp.MustCompile(`^"TRUE"$|^"FALSE"$`)
	stringPattern = regexp.MustCompile(`^"[^"]*"$`)
	charPattern   = regexp.MustCompile(`^'\[[\[\]&$#]\]'$|^'[^\[\]&$#']'$`)
	escapePattern = regexp.MustCompile(`^\[[\[\]&$#]\]$`)
)

// ClassifyNumber turns a scanned run of digits and dots into an INT or FLOAT
// literal.
func ClassifyNumber(text string) (TokenType, value.Value, string) {
	if intPattern.MatchString(text) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return TokenIntLit, value.IntVal(n), ""
		}
	} else if floatPattern.MatchString(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return TokenFloatLit, value.FloatVal(f), ""
		}
	}
	return TokenError, value.Value{}, "Invalid Number."
}

// ClassifyQuoted classifies text that starts with a double quote.
func ClassifyQuoted(text string) (TokenType, value.Value, string) {
	if boolPattern.MatchString(text) {
		return TokenBoolLit, value.BoolVal(text == `"TRUE"`), ""
	}
	if stringPattern.MatchString(text) {
		return TokenStringLit, value.StringVal(text[1 : len(text)-1]), ""
	}
	if strings.Contains(text, "TRUE") || strings.Contains(text, "FALSE") {
		return TokenError, value.Value{}, "Invalid BOOL literal."
	}
	return TokenError, value.Value{}, "Invalid STRING literal."
}

// ClassifyChar classifies text that starts with an apostrophe.
func ClassifyChar(text string) (TokenType, value.Value, string) {
	if charPattern.MatchString(text) {
		runes := []rune(text)
		return TokenCharLit, value.CharVal(runes[len(runes)/2]), ""
	}
	return TokenError, value.Value{}, "Invalid CHAR literal."
}

// ClassifyEscape classifies text that starts with '['.
func ClassifyEscape(text string) (TokenType, value.Value, string) {
	if escapePattern.MatchString(text) {
		return TokenEscape, value.CharVal(rune(text[1])), ""
	}
	return TokenError, value.Value{}, "Invalid '" + text + "' as escape sequence."
}

// ConvertLiteral turns one field of SCAN input into a typed value using the
// same literal rules as the lexer. Numbers may carry a leading '-', bare
// TRUE/FALSE are booleans and a single bare character is a CHAR; anything
// else is taken as a STRING.
func ConvertLiteral(text string) value.Value {
	if text == "" {
		return value.StringVal("")
	}

	digits, negative := strings.CutPrefix(text, "-")
	if t, v, _ := ClassifyNumber(digits); t != TokenError {
		if !negative {
			return v
		}
		neg, _ := value.ApplyUnary(value.OpSub, v)
		return neg
	}

	switch text[0] {
	case '"':
		if t, v, _ := ClassifyQuoted(text); t != TokenError {
			return v
		}
	case '\'':
		if t, v, _ := ClassifyChar(text); t != TokenError {
			return v
		}
	}

	switch text {
	case "TRUE":
		return value.BoolVal(true)
	case "FALSE":
		return value.BoolVal(false)
	}

	if runes := []rune(text); len(runes) == 1 {
		return value.CharVal(runes[0])
	}
	return value.StringVal(text)
}
