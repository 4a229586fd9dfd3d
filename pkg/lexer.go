package lamb

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Tokenizer produces tokens on demand with one token of lookahead. Once the
// input is exhausted every call returns a TokenEOF token.
type Tokenizer interface {
	Next() (Token, error)
	Peek() (Token, error)
}

type stateFunc func(l *Lexer, start *Location) (Token, error)

// Lexer tokenizes an in-memory source buffer. Only ASCII is accepted outside
// of string and char literals.
type Lexer struct {
	input     string
	cursor    int
	line      int
	lineStart int

	peeked    *Token
	peekedErr error

	// The first lexical error is sticky: the stream ends there.
	err *LexicalError
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

func NewLexerFromReader(reader io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading source")
	}

	return NewLexer(string(data)), nil
}

func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok, err := *l.peeked, l.peekedErr
		l.peeked, l.peekedErr = nil, nil

		return tok, err
	}

	return l.scan()
}

func (l *Lexer) Peek() (Token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		l.peeked, l.peekedErr = &tok, err
	}

	return *l.peeked, l.peekedErr
}

// Run drains the lexer and returns every token before TokenEOF.
func (l *Lexer) Run() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		if tok.Typ == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, tok)
	}
}

func (l *Lexer) scan() (Token, error) {
	if l.err != nil {
		return Token{Typ: TokenError, Loc: l.err.Loc}, l.err
	}

	l.skipWhitespace()

	start := l.location()
	tok, err := defaultState(l)(l, start)
	if err != nil {
		var lexErr *LexicalError
		if errors.As(err, &lexErr) {
			l.err = lexErr
		}

		return Token{Typ: TokenError, Loc: start}, err
	}

	return tok, nil
}

func defaultState(l *Lexer) stateFunc {
	b, ok := l.peek()
	switch {
	case !ok:
		return eofState
	case isDigit(b):
		return numberState
	case b == '"':
		return stringState
	case b == '\'':
		return charState
	case isAlphaStart(b):
		return identifierState
	case b == '-' || b == ':':
		return operatorState
	case isSymbol(b):
		return symbolState
	}

	if _, ok := punctuationTable[b]; ok {
		return punctuationState
	}

	return invalidState
}

func eofState(_ *Lexer, start *Location) (Token, error) {
	return Token{Typ: TokenEOF, Loc: start}, nil
}

func numberState(l *Lexer, start *Location) (Token, error) {
	text := l.takeWhile(isDigit)

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Token{}, l.errorf(IntegerOverflow, start, text)
	}

	return Token{Typ: TokenInt, Value: strconv.FormatInt(n, 10), Loc: start}, nil
}

func identifierState(l *Lexer, start *Location) (Token, error) {
	text := l.takeWhile(isAlphaContinue)

	if t, ok := keywordTable[text]; ok {
		return Token{Typ: t, Value: text, Loc: start}, nil
	}

	return Token{Typ: TokenIdentifier, Value: text, Loc: start}, nil
}

func symbolState(l *Lexer, start *Location) (Token, error) {
	return Token{Typ: TokenIdentifier, Value: l.takeWhile(isSymbol), Loc: start}, nil
}

// operatorState handles the bytes that may begin a two byte token.
func operatorState(l *Lexer, start *Location) (Token, error) {
	switch r, _ := l.next(); r {
	case ':':
		if b, ok := l.peek(); ok && b == ':' {
			l.next()
			return Token{Typ: TokenDoubleColon, Value: "::", Loc: start}, nil
		}

		return Token{Typ: TokenColon, Value: ":", Loc: start}, nil
	default: // '-'
		if b, ok := l.peek(); ok && b == '>' {
			l.next()
			return Token{Typ: TokenArrow, Value: "->", Loc: start}, nil
		}

		return Token{Typ: TokenIdentifier, Value: "-" + l.takeWhile(isSymbol), Loc: start}, nil
	}
}

func punctuationState(l *Lexer, start *Location) (Token, error) {
	b, _ := l.next()
	return Token{Typ: punctuationTable[b], Value: string(b), Loc: start}, nil
}

func stringState(l *Lexer, start *Location) (Token, error) {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for {
		at := l.location()
		b, ok := l.next()
		switch {
		case !ok:
			return Token{}, l.errorf(UnterminatedLiteral, start, "\""+str.String())
		case b == '"':
			return Token{Typ: TokenString, Value: str.String(), Loc: start}, nil
		case b == '\\':
			r, err := l.escape(start, at)
			if err != nil {
				return Token{}, err
			}

			str.WriteRune(r)
		default:
			str.WriteByte(b)
		}
	}
}

func charState(l *Lexer, start *Location) (Token, error) {
	l.next() // Skip the leading quote

	b, ok := l.peek()
	if !ok {
		return Token{}, l.errorf(UnterminatedLiteral, start, "'")
	}

	var r rune
	switch b {
	case '\'':
		l.next()
		return Token{}, l.errorf(InvalidCharLiteral, start, "''")
	case '\\':
		at := l.location()
		l.next()

		var err error
		if r, err = l.escape(start, at); err != nil {
			return Token{}, err
		}
	default:
		var size int
		r, size = utf8.DecodeRuneInString(l.input[l.cursor:])
		if r == utf8.RuneError && size <= 1 {
			return Token{}, l.errorf(InvalidCharacter, l.location(), l.input[l.cursor:l.cursor+1])
		}

		for i := 0; i < size; i++ {
			l.next()
		}
	}

	closer, ok := l.next()
	if !ok {
		return Token{}, l.errorf(UnterminatedLiteral, start, "'"+string(r))
	}

	if closer != '\'' {
		return Token{}, l.errorf(InvalidCharLiteral, start, l.input[start.Offset:l.cursor])
	}

	return Token{Typ: TokenChar, Value: string(r), Loc: start}, nil
}

func invalidState(l *Lexer, start *Location) (Token, error) {
	b, _ := l.next()
	return Token{}, l.errorf(InvalidCharacter, start, string([]byte{b}))
}

var escapeTable = map[byte]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// escape reads the byte after the backslash found at at.
func (l *Lexer) escape(start, at *Location) (rune, error) {
	b, ok := l.next()
	if !ok {
		return 0, l.errorf(UnterminatedLiteral, start, l.input[start.Offset:])
	}

	r, ok := escapeTable[b]
	if !ok {
		return 0, l.errorf(InvalidEscape, at, "\\"+string([]byte{b}))
	}

	return r, nil
}

func (l *Lexer) errorf(kind LexErrorKind, loc *Location, text string) error {
	return &LexicalError{
		Kind: kind,
		Loc:  loc,
		Text: text,
	}
}

func (l *Lexer) skipWhitespace() {
	for b, ok := l.peek(); ok && isWhitespace(b); b, ok = l.peek() {
		l.next()
	}
}

func (l *Lexer) takeWhile(pred func(byte) bool) string {
	start := l.cursor
	for b, ok := l.peek(); ok && pred(b); b, ok = l.peek() {
		l.next()
	}

	return l.input[start:l.cursor]
}

func (l *Lexer) location() *Location {
	return &Location{
		Offset: l.cursor,
		Line:   l.line,
		Col:    l.cursor - l.lineStart + 1,
	}
}

func (l *Lexer) peek() (byte, bool) {
	if l.cursor >= len(l.input) {
		return 0, false
	}

	return l.input[l.cursor], true
}

func (l *Lexer) next() (byte, bool) {
	if l.cursor >= len(l.input) {
		return 0, false
	}

	b := l.input[l.cursor]
	l.cursor++

	if b == '\n' {
		l.line++
		l.lineStart = l.cursor
	}

	return b, true
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isAlphaStart(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b == '_'
}

func isAlphaContinue(b byte) bool {
	return isAlphaStart(b) || isDigit(b)
}

// isSymbol reports the bytes symbolic identifiers are made of. '-' may start
// one as well, unless it is followed by '>'.
func isSymbol(b byte) bool {
	switch b {
	case '!', '#', '$', '%', '&', '*', '+', '-', '/', '\\', '<', '>', '?', '@', '^', '~':
		return true
	}

	return false
}
