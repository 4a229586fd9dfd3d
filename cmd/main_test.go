package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDriver(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	d := &driver{stdout: &stdout, stderr: &stderr}
	err := d.app().Run(append([]string{"lamb", "--no-color"}, args...))

	return stdout.String(), stderr.String(), err
}

func TestDriverParseExpr(t *testing.T) {
	stdout, stderr, err := runDriver(t, "parse", "-e", "let x = 1 in x + 2 * 3")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, "(let x (= 1) ((+ x) ((* 2) 3)))\n", stdout)

	stdout, _, err = runDriver(t, "--juxtaposition", "parse", "-e", "f x + 1")
	require.NoError(t, err)
	assert.Equal(t, "((+ (f x)) 1)\n", stdout)
}

func TestDriverParseErrors(t *testing.T) {
	_, stderr, err := runDriver(t, "parse", "-e", "let x = 1 x")
	assert.Equal(t, errFailed, err)
	assert.Contains(t, stderr, "<expr>:1:11: ")
	assert.Contains(t, stderr, "unexpected token")
	assert.Contains(t, stderr, "expected In")

	_, stderr, err = runDriver(t, "parse", "-e", "if a then b")
	assert.Equal(t, errFailed, err)
	assert.Contains(t, stderr, "unexpected end of input")
}

func TestDriverParseFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lamb")
	bad := filepath.Join(dir, "bad.lamb")
	require.NoError(t, os.WriteFile(good, []byte("a + b"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("a ,"), 0o644))

	stdout, stderr, err := runDriver(t, "parse", good, bad)
	assert.Equal(t, errFailed, err)
	assert.Equal(t, good+": ((+ a) b)\n", stdout)
	assert.Contains(t, stderr, bad+":1:3: ")
	assert.Contains(t, stderr, "lexical error")
}

func TestDriverConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lamb.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("operators:\n  - name: \"^\"\n    precedence: 30\n    assoc: right\n"), 0o644))

	stdout, _, err := runDriver(t, "--config", cfg, "parse", "-e", "a ^ b ^ c")
	require.NoError(t, err)
	assert.Equal(t, "((^ a) ((^ b) c))\n", stdout)

	require.NoError(t, os.WriteFile(cfg, []byte("bogus: true\n"), 0o644))
	_, _, err = runDriver(t, "--config", cfg, "parse", "-e", "a")
	assert.Error(t, err)
}

func TestDriverTokens(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src.lamb")
	require.NoError(t, os.WriteFile(src, []byte("let x = 42"), 0o644))

	stdout, _, err := runDriver(t, "tokens", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "LOCATION")
	assert.Contains(t, stdout, "1:9")
	assert.Contains(t, stdout, "42")

	_, _, err = runDriver(t, "tokens")
	assert.Error(t, err)
}
