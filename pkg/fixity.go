package lamb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
)

func (a Associativity) String() string {
	if a == AssocRight {
		return "right"
	}

	return "left"
}

// ParseAssociativity accepts "left" and "right", case-insensitively.
func ParseAssociativity(s string) (Associativity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return AssocLeft, nil
	case "right":
		return AssocRight, nil
	}

	return AssocLeft, errors.Errorf("unknown associativity %q", s)
}

// OperatorInfo holds the binding powers of an infix operator. The parser keeps
// folding operators to the right of an operand while their LeftBP is greater
// than the binding power the operand was parsed at, so associativity falls
// out of how RightBP relates to LeftBP.
type OperatorInfo struct {
	LeftBP  int
	RightBP int
	Assoc   Associativity
}

func NewOperatorInfo(precedence int, assoc Associativity) OperatorInfo {
	if assoc == AssocRight {
		return OperatorInfo{LeftBP: precedence, RightBP: precedence - 1, Assoc: AssocRight}
	}

	return OperatorInfo{LeftBP: precedence, RightBP: precedence + 1, Assoc: AssocLeft}
}

func (o OperatorInfo) Validate() error {
	if o.LeftBP <= 0 {
		return errors.Errorf("left binding power must be positive, got %d", o.LeftBP)
	}

	if o.RightBP < 0 {
		return errors.Errorf("right binding power must not be negative, got %d", o.RightBP)
	}

	switch o.Assoc {
	case AssocLeft:
		if o.RightBP <= o.LeftBP {
			return errors.Errorf("left-associative operator needs right binding power > %d, got %d", o.LeftBP, o.RightBP)
		}
	case AssocRight:
		if o.RightBP > o.LeftBP {
			return errors.Errorf("right-associative operator needs right binding power <= %d, got %d", o.LeftBP, o.RightBP)
		}
	default:
		return errors.Errorf("unknown associativity %d", int(o.Assoc))
	}

	return nil
}

func (o OperatorInfo) String() string {
	return fmt.Sprintf("%s(%d, %d)", o.Assoc, o.LeftBP, o.RightBP)
}

// FixityTable maps operator names to their binding powers. Identifiers that
// are not in the table are plain values.
type FixityTable struct {
	ops map[string]OperatorInfo
}

func NewFixityTable() *FixityTable {
	return &FixityTable{
		ops: make(map[string]OperatorInfo),
	}
}

// NewDefaultFixityTable returns a table seeded with the builtin operators.
func NewDefaultFixityTable() *FixityTable {
	t := NewFixityTable()
	defineBuiltins(t)

	return t
}

func (t *FixityTable) Lookup(name string) (OperatorInfo, bool) {
	info, ok := t.ops[name]
	return info, ok
}

func (t *FixityTable) Insert(name string, info OperatorInfo) error {
	if name == "" {
		return errors.New("operator name must not be empty")
	}

	if err := info.Validate(); err != nil {
		return errors.Wrapf(err, "operator %q", name)
	}

	t.ops[name] = info
	return nil
}

func (t *FixityTable) Delete(name string) {
	delete(t.ops, name)
}

func (t *FixityTable) Clone() *FixityTable {
	c := NewFixityTable()
	for k, v := range t.ops {
		c.ops[k] = v
	}

	return c
}

// Names returns the registered operators in sorted order.
func (t *FixityTable) Names() []string {
	names := make([]string, 0, len(t.ops))
	for k := range t.ops {
		names = append(names, k)
	}

	sort.Strings(names)
	return names
}

// scope registers name for the lifetime of the returned restore func, which
// puts back whatever entry name had before.
func (t *FixityTable) scope(name string, info OperatorInfo) (restore func(), err error) {
	prev, had := t.Lookup(name)
	if err := t.Insert(name, info); err != nil {
		return nil, err
	}

	return func() {
		if had {
			t.ops[name] = prev
			return
		}

		t.Delete(name)
	}, nil
}
