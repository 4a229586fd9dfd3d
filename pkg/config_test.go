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

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
juxtaposition: true
operators:
  - name: "-"
    precedence: 10
  - name: "^"
    precedence: 30
    assoc: right
`))
	require.NoError(t, err)

	assert.True(t, cfg.Juxtaposition)
	assert.Equal(t, PrecedenceInfix, cfg.InfixPrecedence)
	assert.Equal(t, []OperatorConfig{
		{Name: "-", Precedence: 10},
		{Name: "^", Precedence: 30, Assoc: "right"},
	}, cfg.Operators)

	table, err := cfg.FixityTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"*", "+", "-", "^"}, table.Names())

	caret, _ := table.Lookup("^")
	assert.Equal(t, AssocRight, caret.Assoc)

	opts, err := cfg.Options()
	require.NoError(t, err)

	got, err := ParseString("f 2 ^ 3 ^ 4 - 1", opts...)
	require.NoError(t, err)
	assert.Equal(t, "((- ((^ (f 2)) ((^ 3) 4))) 1)", got.String())
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig(strings.NewReader(`
infix_precedence: 0
operators:
  - name: ""
    precedence: 3
  - name: "a b"
    precedence: 3
  - name: "<>"
    precedence: 0
  - name: "<>"
    precedence: 2
    assoc: sideways
`))
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 6)

	_, err = ParseConfig(strings.NewReader("unknown_key: 1\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lamb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("infix_precedence: 7\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.InfixPrecedence)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
