package lamb

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SyntaxError is implemented by every error the lexer and parser return.
type SyntaxError interface {
	error
	GetLocation() *Location
}

type LexErrorKind int

const (
	InvalidCharacter LexErrorKind = iota
	IntegerOverflow
	UnterminatedLiteral
	InvalidEscape
	InvalidCharLiteral
)

func (k LexErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "invalid character"
	case IntegerOverflow:
		return "integer overflow"
	case UnterminatedLiteral:
		return "unterminated literal"
	case InvalidEscape:
		return "invalid escape sequence"
	case InvalidCharLiteral:
		return "invalid character literal"
	}

	return fmt.Sprintf("LexErrorKind(%d)", int(k))
}

type LexicalError struct {
	Kind LexErrorKind
	Loc  *Location
	Text string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Loc, e.Kind, e.Text)
}

func (e *LexicalError) GetLocation() *Location {
	return e.Loc
}

// UnexpectedError reports a present token that none of the Expected kinds
// matched.
type UnexpectedError struct {
	Expected []TokenType
	Found    Token
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Found.Loc, expectedList(e.Expected), e.Found)
}

func (e *UnexpectedError) GetLocation() *Location {
	return e.Found.Loc
}

// EarlyEOFError reports input that ended where a token was still required.
type EarlyEOFError struct {
	Expected []TokenType
	Loc      *Location
}

func (e *EarlyEOFError) Error() string {
	return fmt.Sprintf("%s: unexpected end of input, expected %s", e.Loc, expectedList(e.Expected))
}

func (e *EarlyEOFError) GetLocation() *Location {
	return e.Loc
}

// ArityError reports an ifx function that does not take exactly two
// parameters.
type ArityError struct {
	Params []string
	Loc    *Location
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: infix function must take exactly 2 parameters, got %d", e.Loc, len(e.Params))
}

func (e *ArityError) GetLocation() *Location {
	return e.Loc
}

// IsIncomplete reports whether err could be fixed by appending more input.
func IsIncomplete(err error) bool {
	var eof *EarlyEOFError
	if errors.As(err, &eof) {
		return true
	}

	var lex *LexicalError
	return errors.As(err, &lex) && lex.Kind == UnterminatedLiteral
}

// AsSyntaxError unwraps err down to the SyntaxError that caused it.
func AsSyntaxError(err error) (SyntaxError, bool) {
	se, ok := errors.Cause(err).(SyntaxError)
	return se, ok
}

func expectedList(types []TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	if len(names) == 1 {
		return names[0]
	}

	return "one of " + strings.Join(names, ", ")
}
