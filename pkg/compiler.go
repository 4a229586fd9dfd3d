package lamb

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Frontend turns source files into syntax trees. Every parse gets a fresh
// Parser, so declarations in one unit never leak into another.
type Frontend struct {
	opts []Option
}

func NewFrontend(opts ...Option) *Frontend {
	return &Frontend{opts: opts}
}

func NewFrontendFromConfig(cfg *Config) (*Frontend, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return NewFrontend(opts...), nil
}

// Options returns the parser options every parse starts from.
func (f *Frontend) Options() []Option {
	return f.opts
}

// FileError ties a parse failure to the file it happened in.
type FileError struct {
	Filename string
	Err      error
}

func (e *FileError) Error() string {
	return e.Filename + ":" + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func (e *FileError) Cause() error {
	return e.Err
}

func (f *Frontend) ParseFile(filename string) (Expr, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening source")
	}
	defer file.Close()

	return f.ParseReader(filename, file)
}

func (f *Frontend) ParseReader(name string, reader io.Reader) (Expr, error) {
	lexer, err := NewLexerFromReader(reader)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	glog.V(2).Infof("parsing %s", name)

	expr, err := NewParser(lexer, f.opts...).ParseAll()
	if err != nil {
		return nil, &FileError{Filename: name, Err: err}
	}

	return expr, nil
}

// ParseFiles parses every file, returning the trees that parsed and all the
// failures combined.
func (f *Frontend) ParseFiles(filenames ...string) (map[string]Expr, error) {
	var result *multierror.Error

	exprs := make(map[string]Expr, len(filenames))
	for _, name := range filenames {
		expr, err := f.ParseFile(name)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		exprs[name] = expr
	}

	return exprs, result.ErrorOrNil()
}

func (f *Frontend) TokenizeFile(filename string) ([]Token, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening source")
	}
	defer file.Close()

	lexer, err := NewLexerFromReader(file)
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}

	toks, err := lexer.Run()
	if err != nil {
		return nil, &FileError{Filename: filename, Err: err}
	}

	return toks, nil
}
