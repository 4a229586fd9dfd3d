package lamb

import (
	"github.com/golang/glog"
)

// exprStart lists the tokens that may begin an expression.
var exprStart = []TokenType{
	TokenLet,
	TokenIf,
	TokenFun,
	TokenInt,
	TokenString,
	TokenChar,
	TokenBool,
	TokenIdentifier,
	TokenOpenParentheses,
}

type Option func(p *Parser)

// WithFixityTable makes the parser start from a copy of t instead of the
// builtin operators.
func WithFixityTable(t *FixityTable) Option {
	return func(p *Parser) {
		if t != nil {
			p.fixity = t.Clone()
		}
	}
}

// WithJuxtaposition enables function application by juxtaposition: `f x y`
// parses as ((f x) y), binding tighter than every operator.
func WithJuxtaposition(enabled bool) Option {
	return func(p *Parser) {
		p.juxtaposition = enabled
	}
}

// WithInfixPrecedence sets the precedence given to operators declared with
// `let op = fun ifx a b -> ...`. They are left-associative.
func WithInfixPrecedence(precedence int) Option {
	return func(p *Parser) {
		p.infix = NewOperatorInfo(precedence, AssocLeft)
	}
}

// Parser is a Pratt parser over a Tokenizer. Operators are looked up in a
// fixity table owned by the parser, so new operators need no grammar change.
type Parser struct {
	tokenizer     Tokenizer
	fixity        *FixityTable
	juxtaposition bool
	infix         OperatorInfo
}

func NewParser(tokenizer Tokenizer, opts ...Option) *Parser {
	p := &Parser{
		tokenizer: tokenizer,
		fixity:    NewDefaultFixityTable(),
		infix:     NewOperatorInfo(PrecedenceInfix, AssocLeft),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ParseString parses src as a single expression spanning the whole input.
func ParseString(src string, opts ...Option) (Expr, error) {
	return NewParser(NewLexer(src), opts...).ParseAll()
}

func (p *Parser) Fixity() *FixityTable {
	return p.fixity
}

// Parse reads one expression. Tokens after it are left in the tokenizer.
func (p *Parser) Parse() (Expr, error) {
	return p.expr(0)
}

// ParseAll reads one expression and requires the input to end after it.
func (p *Parser) ParseAll() (Expr, error) {
	expr, err := p.Parse()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Typ != TokenEOF {
		return nil, &UnexpectedError{Expected: []TokenType{TokenEOF}, Found: tok}
	}

	return expr, nil
}

func (p *Parser) peek() (Token, error) {
	return p.tokenizer.Peek()
}

func (p *Parser) next() (Token, error) {
	return p.tokenizer.Next()
}

// expect consumes the next token and fails unless it is one of types.
func (p *Parser) expect(types ...TokenType) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	for _, typ := range types {
		if tok.Typ == typ {
			return tok, nil
		}
	}

	return tok, p.unexpected(tok, types...)
}

func (p *Parser) unexpected(tok Token, expected ...TokenType) error {
	if tok.Typ == TokenEOF {
		return &EarlyEOFError{Expected: expected, Loc: tok.Loc}
	}

	return &UnexpectedError{Expected: expected, Found: tok}
}

func (p *Parser) operator(tok Token) (OperatorInfo, bool) {
	if tok.Typ != TokenIdentifier {
		return OperatorInfo{}, false
	}

	return p.fixity.Lookup(tok.Value)
}

func (p *Parser) expr(minBP int) (Expr, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	lhs, err := p.nud(tok)
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if info, ok := p.operator(tok); ok {
			if info.LeftBP <= minBP {
				return lhs, nil
			}

			p.next() // Skip the operator
			if lhs, err = p.led(tok, info, lhs); err != nil {
				return nil, err
			}

			continue
		}

		if p.juxtaposition && startsAtom(tok) && PrecedenceApplication > minBP {
			if lhs, err = p.application(lhs); err != nil {
				return nil, err
			}

			continue
		}

		return lhs, nil
	}
}

// nud parses the expression that tok starts.
func (p *Parser) nud(tok Token) (Expr, error) {
	switch tok.Typ {
	case TokenLet:
		return p.let(tok)
	case TokenIf:
		return p.conditional(tok)
	case TokenFun:
		return p.function(tok)
	case TokenInt, TokenString, TokenChar, TokenBool:
		return p.literal(tok), nil
	case TokenIdentifier:
		info, ok := p.fixity.Lookup(tok.Value)
		if !ok {
			return &Identifier{Name: tok.Value, Loc: tok.Loc}, nil
		}

		// An operator in prefix position is applied to what follows it.
		operand, err := p.expr(info.RightBP)
		if err != nil {
			return nil, err
		}

		return &ApplyExpr{
			Callee: &Identifier{Name: tok.Value, Loc: tok.Loc},
			Arg:    operand,
			Loc:    tok.Loc,
		}, nil
	case TokenOpenParentheses:
		return p.grouped(tok)
	}

	return nil, p.unexpected(tok, exprStart...)
}

// led folds lhs into the infix application of op to the operand that follows.
func (p *Parser) led(op Token, info OperatorInfo, lhs Expr) (Expr, error) {
	rhs, err := p.expr(info.RightBP)
	if err != nil {
		return nil, err
	}

	return &ApplyExpr{
		Callee: &ApplyExpr{
			Callee: &Identifier{Name: op.Value, Loc: op.Loc},
			Arg:    lhs,
			Loc:    lhs.GetLocation(),
		},
		Arg: rhs,
		Loc: lhs.GetLocation(),
	}, nil
}

func (p *Parser) application(callee Expr) (Expr, error) {
	arg, err := p.expr(PrecedenceApplication + 1)
	if err != nil {
		return nil, err
	}

	return &ApplyExpr{
		Callee: callee,
		Arg:    arg,
		Loc:    callee.GetLocation(),
	}, nil
}

func (p *Parser) literal(tok Token) Expr {
	lit := &LiteralExpr{Value: tok.Value, Loc: tok.Loc}
	switch tok.Typ {
	case TokenInt:
		lit.Typ = LiteralInt
	case TokenString:
		lit.Typ = LiteralString
	case TokenChar:
		lit.Typ = LiteralChar
	case TokenBool:
		lit.Typ = LiteralBool
	}

	return lit
}

func (p *Parser) grouped(open Token) (Expr, error) {
	inner, err := p.expr(0)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return &GroupedExpr{Inner: inner, Loc: open.Loc}, nil
}

func (p *Parser) let(kw Token) (Expr, error) {
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	def, err := p.definition()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenIn); err != nil {
		return nil, err
	}

	if declaresInfix(def) {
		restore, err := p.fixity.scope(name.Value, p.infix)
		if err != nil {
			return nil, err
		}
		defer restore()

		glog.V(2).Infof("%s: operator %q is infix %s in the let body", name.Loc, name.Value, p.infix)
	}

	body, err := p.expr(0)
	if err != nil {
		return nil, err
	}

	return &LetExpr{
		Name: name.Value,
		Def:  def,
		Body: body,
		Loc:  kw.Loc,
	}, nil
}

func (p *Parser) definition() (Definition, error) {
	tok, err := p.expect(TokenDoubleColon, TokenColon, TokenEquals)
	if err != nil {
		return nil, err
	}

	switch tok.Typ {
	case TokenDoubleColon:
		typ, err := p.typeDef()
		if err != nil {
			return nil, err
		}

		return &TypeDefinition{Type: typ}, nil
	case TokenColon:
		typ, err := p.typeDef()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenEquals); err != nil {
			return nil, err
		}

		body, err := p.expr(0)
		if err != nil {
			return nil, err
		}

		return &ExprDefinition{Type: typ, Body: body}, nil
	default:
		body, err := p.expr(0)
		if err != nil {
			return nil, err
		}

		return &ExprDefinition{Body: body}, nil
	}
}

// typeDef only understands type names for now.
func (p *Parser) typeDef() (TypeDef, error) {
	tok, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	return &TypeName{Name: tok.Value, Loc: tok.Loc}, nil
}

func (p *Parser) conditional(kw Token) (Expr, error) {
	predicate, err := p.expr(0)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenThen); err != nil {
		return nil, err
	}

	fulfilled, err := p.expr(0)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenElse); err != nil {
		return nil, err
	}

	unfulfilled, err := p.expr(0)
	if err != nil {
		return nil, err
	}

	return &IfExpr{
		Predicate:   predicate,
		Fulfilled:   fulfilled,
		Unfulfilled: unfulfilled,
		Loc:         kw.Loc,
	}, nil
}

func (p *Parser) function(kw Token) (Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	infix := tok.Typ == TokenIfx
	if infix {
		p.next() // Skip ifx
	}

	var params []string
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Typ != TokenIdentifier {
			break
		}

		p.next()
		params = append(params, tok.Value)
	}

	if infix && len(params) != 2 {
		return nil, &ArityError{Params: params, Loc: kw.Loc}
	}

	if _, err := p.expect(TokenArrow); err != nil {
		return nil, err
	}

	body, err := p.expr(0)
	if err != nil {
		return nil, err
	}

	return &FuncExpr{
		Infix:  infix,
		Params: params,
		Body:   body,
		Loc:    kw.Loc,
	}, nil
}

func startsAtom(tok Token) bool {
	switch tok.Typ {
	case TokenIdentifier, TokenInt, TokenString, TokenChar, TokenBool, TokenOpenParentheses:
		return true
	}

	return false
}

// declaresInfix reports whether def binds an ifx function, possibly wrapped
// in parentheses.
func declaresInfix(def Definition) bool {
	d, ok := def.(*ExprDefinition)
	if !ok {
		return false
	}

	body := d.Body
	for {
		g, ok := body.(*GroupedExpr)
		if !ok {
			break
		}

		body = g.Inner
	}

	f, ok := body.(*FuncExpr)
	return ok && f.Infix
}
