package lamb

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a node of the syntax tree. Every node owns its children.
type Expr interface {
	GetLocation() *Location
	String() string
}

type LetExpr struct {
	Name string
	Def  Definition
	Body Expr
	Loc  *Location
}

type IfExpr struct {
	Predicate   Expr
	Fulfilled   Expr
	Unfulfilled Expr
	Loc         *Location
}

// FuncExpr is a lambda. Infix functions take exactly two parameters.
type FuncExpr struct {
	Infix  bool
	Params []string
	Body   Expr
	Loc    *Location
}

// ApplyExpr applies Callee to a single argument. `a + b` is represented as
// ((+ a) b).
type ApplyExpr struct {
	Callee Expr
	Arg    Expr
	Loc    *Location
}

type Identifier struct {
	Name string
	Loc  *Location
}

type LiteralType int

const (
	LiteralInt LiteralType = iota
	LiteralString
	LiteralBool
	LiteralChar
)

func (t LiteralType) String() string {
	switch t {
	case LiteralInt:
		return "int"
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralChar:
		return "char"
	}

	return fmt.Sprintf("LiteralType(%d)", int(t))
}

// LiteralExpr keeps the canonical text of the value: decimal digits for ints,
// the unescaped contents for strings and chars, true or false for bools.
type LiteralExpr struct {
	Typ   LiteralType
	Value string
	Loc   *Location
}

func (l *LiteralExpr) Int() (int32, bool) {
	if l.Typ != LiteralInt {
		return 0, false
	}

	n, err := strconv.ParseInt(l.Value, 10, 32)
	return int32(n), err == nil
}

func (l *LiteralExpr) Bool() (bool, bool) {
	if l.Typ != LiteralBool {
		return false, false
	}

	return l.Value == "true", true
}

func (l *LiteralExpr) Char() (rune, bool) {
	if l.Typ != LiteralChar {
		return 0, false
	}

	r := []rune(l.Value)
	if len(r) != 1 {
		return 0, false
	}

	return r[0], true
}

// GroupedExpr is a parenthesised expression. It is kept in the tree so the
// grouping stays visible to later passes.
type GroupedExpr struct {
	Inner Expr
	Loc   *Location
}

func (e *LetExpr) GetLocation() *Location     { return e.Loc }
func (e *IfExpr) GetLocation() *Location      { return e.Loc }
func (e *FuncExpr) GetLocation() *Location    { return e.Loc }
func (e *ApplyExpr) GetLocation() *Location   { return e.Loc }
func (e *Identifier) GetLocation() *Location  { return e.Loc }
func (e *LiteralExpr) GetLocation() *Location { return e.Loc }
func (e *GroupedExpr) GetLocation() *Location { return e.Loc }

func (e *LetExpr) String() string {
	return fmt.Sprintf("(let %s %s %s)", e.Name, e.Def, e.Body)
}

func (e *IfExpr) String() string {
	return fmt.Sprintf("(if %s %s %s)", e.Predicate, e.Fulfilled, e.Unfulfilled)
}

func (e *FuncExpr) String() string {
	kw := "fun"
	if e.Infix {
		kw = "fun ifx"
	}

	return fmt.Sprintf("(%s [%s] %s)", kw, strings.Join(e.Params, " "), e.Body)
}

func (e *ApplyExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.Callee, e.Arg)
}

func (e *Identifier) String() string {
	return e.Name
}

func (e *LiteralExpr) String() string {
	switch e.Typ {
	case LiteralString:
		return strconv.Quote(e.Value)
	case LiteralChar:
		return quoteChar(e.Value)
	}

	return e.Value
}

func (e *GroupedExpr) String() string {
	return fmt.Sprintf("(group %s)", e.Inner)
}

// Definition is what a let binds: either a type or a value.
type Definition interface {
	fmt.Stringer
	isDefinition()
}

// TypeDefinition comes from `let t :: T in ...`.
type TypeDefinition struct {
	Type TypeDef
}

// ExprDefinition comes from `let x = e in ...` or `let x : T = e in ...`. Type
// is nil when no annotation was written.
type ExprDefinition struct {
	Type TypeDef
	Body Expr
}

func (*TypeDefinition) isDefinition() {}
func (*ExprDefinition) isDefinition() {}

func (d *TypeDefinition) String() string {
	return fmt.Sprintf("(:: %s)", d.Type)
}

func (d *ExprDefinition) String() string {
	if d.Type == nil {
		return fmt.Sprintf("(= %s)", d.Body)
	}

	return fmt.Sprintf("(: %s = %s)", d.Type, d.Body)
}

// TypeDef describes a type. Only TypeName is produced by the parser so far;
// the other shapes are the targets of the type grammar once it is written.
type TypeDef interface {
	fmt.Stringer
	isTypeDef()
}

type TypeName struct {
	Name string
	Loc  *Location
}

type ProductField struct {
	Name string
	Type string
}

type ProductType struct {
	Fields []ProductField
}

type SumType struct {
	Variants []TypeDef
}

type FunctionType struct {
	Domain   TypeDef
	Codomain TypeDef
}

func (*TypeName) isTypeDef()     {}
func (*ProductType) isTypeDef()  {}
func (*SumType) isTypeDef()      {}
func (*FunctionType) isTypeDef() {}

func (t *TypeName) String() string {
	return t.Name
}

func (t *ProductType) String() string {
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = f.Name + " : " + f.Type
	}

	return "{ " + strings.Join(fields, "; ") + " }"
}

func (t *SumType) String() string {
	variants := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		variants[i] = v.String()
	}

	return strings.Join(variants, " | ")
}

func (t *FunctionType) String() string {
	return fmt.Sprintf("(%s -> %s)", t.Domain, t.Codomain)
}

func quoteChar(s string) string {
	r := []rune(s)
	if len(r) != 1 {
		return "'" + s + "'"
	}

	return strconv.QuoteRune(r[0])
}
