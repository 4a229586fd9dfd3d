package lamb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsIncomplete(t *testing.T) {
	cases := []struct {
		data       string
		incomplete bool
	}{
		{"let x = 1 in", true},
		{"let x = 1", true},
		{"if a then b", true},
		{"(1 + 2", true},
		{"fun a b", true},
		{"\"open string", true},
		{"'", true},
		{"let x = 1 x", false},
		{"1 )", false},
		{"fun ifx a -> a", false},
		{"x ,", false},
	}

	for _, c := range cases {
		_, err := ParseString(c.data)
		require.Error(t, err, c.data)
		assert.Equal(t, c.incomplete, IsIncomplete(err), c.data)
	}

	assert.False(t, IsIncomplete(nil))
}

func TestAsSyntaxError(t *testing.T) {
	_, err := ParseString("let x = 1\n\n  ,")
	require.Error(t, err)

	se, ok := AsSyntaxError(errors.Wrap(err, "context"))
	require.True(t, ok)
	assert.Equal(t, &Location{Offset: 13, Line: 3, Col: 3}, se.GetLocation())

	_, ok = AsSyntaxError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	loc := &Location{Line: 2, Col: 4}

	err := &EarlyEOFError{Expected: []TokenType{TokenThen}, Loc: loc}
	assert.Contains(t, err.Error(), "2:4")
	assert.Contains(t, err.Error(), TokenThen.String())

	multi := &EarlyEOFError{Expected: []TokenType{TokenDoubleColon, TokenColon, TokenEquals}, Loc: loc}
	assert.Contains(t, multi.Error(), "one of ")

	arity := &ArityError{Params: []string{"a"}, Loc: loc}
	assert.Contains(t, arity.Error(), "got 1")

	lex := &LexicalError{Kind: IntegerOverflow, Loc: loc, Text: "99999999999"}
	assert.Contains(t, lex.Error(), "integer overflow")
}
