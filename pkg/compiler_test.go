package lamb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func TestFrontendParseFile(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.lamb", "let x = 1 in x + 2")
	bad := writeSource(t, dir, "bad.lamb", "let x = 1\n x")

	f := NewFrontend()

	expr, err := f.ParseFile(good)
	require.NoError(t, err)
	assert.Equal(t, "(let x (= 1) ((+ x) 2))", expr.String())

	_, err = f.ParseFile(bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), bad+":"), err.Error())

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, bad, fileErr.Filename)

	se, ok := AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, 2, se.GetLocation().Line)

	var unexpected *UnexpectedError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, []TokenType{TokenIn}, unexpected.Expected)

	_, err = f.ParseFile(filepath.Join(dir, "missing.lamb"))
	assert.Error(t, err)
}

func TestFrontendParseFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.lamb", "1 + 2")
	b := writeSource(t, dir, "b.lamb", "if x then")
	c := writeSource(t, dir, "c.lamb", "fun ifx a -> a")

	exprs, err := NewFrontend().ParseFiles(a, b, c)
	require.Error(t, err)

	assert.Len(t, exprs, 1)
	assert.Contains(t, exprs, a)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)

	var eof *EarlyEOFError
	assert.True(t, errors.As(merr.Errors[0], &eof))
	var arity *ArityError
	assert.True(t, errors.As(merr.Errors[1], &arity))
}

func TestFrontendFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Juxtaposition = true
	cfg.Operators = []OperatorConfig{{Name: "-", Precedence: PrecedenceAdditive}}

	f, err := NewFrontendFromConfig(cfg)
	require.NoError(t, err)

	expr, err := f.ParseReader("<test>", strings.NewReader("f x - 1"))
	require.NoError(t, err)
	assert.Equal(t, "((- (f x)) 1)", expr.String())

	cfg.Operators = []OperatorConfig{{Name: "", Precedence: 1}}
	_, err = NewFrontendFromConfig(cfg)
	assert.Error(t, err)
}

func TestFrontendTokenizeFile(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.lamb", "let x = 'c' in x")
	bad := writeSource(t, dir, "bad.lamb", "x ,")

	toks, err := NewFrontend().TokenizeFile(good)
	require.NoError(t, err)
	assert.Equal(t, []Token{
		tok(TokenLet, "let"),
		tok(TokenIdentifier, "x"),
		tok(TokenEquals, "="),
		tok(TokenChar, "c"),
		tok(TokenIn, "in"),
		tok(TokenIdentifier, "x"),
	}, stripLocations(toks))

	_, err = NewFrontend().TokenizeFile(bad)
	var lexErr *LexicalError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, InvalidCharacter, lexErr.Kind)
}
