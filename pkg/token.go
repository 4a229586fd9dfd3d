package lamb

import "fmt"

type TokenType uint64

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	TokenError TokenType = iota
	TokenEOF
	TokenInt
	TokenString
	TokenChar
	TokenBool

	TokenIdentifier
	TokenLet
	TokenIn
	TokenFun
	TokenIfx
	TokenIf
	TokenThen
	TokenElse

	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenPipe
	TokenDoubleColon
	TokenColon
	TokenSemicolon
	TokenEquals
	TokenArrow
)

var tokenNames = [...]string{
	TokenError:            "Error",
	TokenEOF:              "EOF",
	TokenInt:              "Int",
	TokenString:           "String",
	TokenChar:             "Char",
	TokenBool:             "Bool",
	TokenIdentifier:       "Identifier",
	TokenLet:              "Let",
	TokenIn:               "In",
	TokenFun:              "Fun",
	TokenIfx:              "Ifx",
	TokenIf:               "If",
	TokenThen:             "Then",
	TokenElse:             "Else",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
	TokenOpenCurly:        "OpenCurly",
	TokenCloseCurly:       "CloseCurly",
	TokenPipe:             "Pipe",
	TokenDoubleColon:      "DoubleColon",
	TokenColon:            "Colon",
	TokenSemicolon:        "Semicolon",
	TokenEquals:           "Equals",
	TokenArrow:            "Arrow",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var keywordTable = map[string]TokenType{
	"let":   TokenLet,
	"in":    TokenIn,
	"if":    TokenIf,
	"then":  TokenThen,
	"else":  TokenElse,
	"fun":   TokenFun,
	"ifx":   TokenIfx,
	"true":  TokenBool,
	"false": TokenBool,
}

var punctuationTable = map[byte]TokenType{
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
	'{': TokenOpenCurly,
	'}': TokenCloseCurly,
	'|': TokenPipe,
	';': TokenSemicolon,
	'=': TokenEquals,
}

// Location points at the first byte of a token. Line and Col are 1-based.
type Location struct {
	Offset int
	Line   int
	Col    int
}

func (l *Location) String() string {
	if l == nil {
		return "?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) String() string {
	switch t.Typ {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier, TokenInt, TokenBool:
		return fmt.Sprintf("%s(%s)", t.Typ, t.Value)
	case TokenString:
		return fmt.Sprintf("%s(%q)", t.Typ, t.Value)
	case TokenChar:
		return fmt.Sprintf("%s(%s)", t.Typ, quoteChar(t.Value))
	}

	return t.Typ.String()
}

func (t Token) isValid() bool {
	return t.Typ != TokenEOF && t.Typ != TokenError
}
