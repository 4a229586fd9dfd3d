package lamb

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OperatorConfig declares an extra infix operator.
type OperatorConfig struct {
	Name       string `yaml:"name"`
	Precedence int    `yaml:"precedence"`
	Assoc      string `yaml:"assoc"`
}

// Config is the YAML configuration of the front end, e.g.
//
//	juxtaposition: true
//	infix_precedence: 5
//	operators:
//	  - name: "-"
//	    precedence: 10
//	  - name: "^"
//	    precedence: 30
//	    assoc: right
type Config struct {
	Juxtaposition   bool             `yaml:"juxtaposition"`
	InfixPrecedence int              `yaml:"infix_precedence"`
	Operators       []OperatorConfig `yaml:"operators"`
}

func DefaultConfig() *Config {
	return &Config{
		InfixPrecedence: PrecedenceInfix,
	}
}

func LoadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", filename)
	}

	return cfg, nil
}

// ParseConfig decodes and validates a YAML config. Missing keys keep their
// defaults; an empty document is the default config.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid entry, not just the first.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := NewOperatorInfo(c.InfixPrecedence, AssocLeft).Validate(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "infix_precedence"))
	}

	seen := map[string]bool{}
	for i, op := range c.Operators {
		if _, err := op.info(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "operators[%d]", i))
		}

		if op.Name != "" && seen[op.Name] {
			result = multierror.Append(result, errors.Errorf("operators[%d]: duplicate operator %q", i, op.Name))
		}
		seen[op.Name] = true
	}

	return result.ErrorOrNil()
}

// FixityTable returns the builtin operators overlaid with the configured ones.
func (c *Config) FixityTable() (*FixityTable, error) {
	t := NewDefaultFixityTable()
	for i, op := range c.Operators {
		info, err := op.info()
		if err != nil {
			return nil, errors.Wrapf(err, "operators[%d]", i)
		}

		if err := t.Insert(op.Name, info); err != nil {
			return nil, errors.Wrapf(err, "operators[%d]", i)
		}
	}

	return t, nil
}

// Options turns the config into parser options.
func (c *Config) Options() ([]Option, error) {
	t, err := c.FixityTable()
	if err != nil {
		return nil, err
	}

	return []Option{
		WithFixityTable(t),
		WithJuxtaposition(c.Juxtaposition),
		WithInfixPrecedence(c.InfixPrecedence),
	}, nil
}

func (o OperatorConfig) info() (OperatorInfo, error) {
	if o.Name == "" {
		return OperatorInfo{}, errors.New("operator name must not be empty")
	}

	if !isOperatorName(o.Name) {
		return OperatorInfo{}, errors.Errorf("%q is not a single identifier", o.Name)
	}

	assoc, err := ParseAssociativity(o.Assoc)
	if err != nil {
		return OperatorInfo{}, err
	}

	info := NewOperatorInfo(o.Precedence, assoc)
	if err := info.Validate(); err != nil {
		return OperatorInfo{}, errors.Wrapf(err, "operator %q", o.Name)
	}

	return info, nil
}

// isOperatorName reports whether name lexes as exactly one identifier token.
func isOperatorName(name string) bool {
	toks, err := NewLexer(name).Run()
	return err == nil && len(toks) == 1 && toks[0].Typ == TokenIdentifier && toks[0].Value == name
}
