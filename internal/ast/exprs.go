package ast

import (
	"fmt"
	"strings"

	"github.com/loxlang/golox/internal/token"
)

// Literal is a literal value: nil, a bool, a float64 (number) or a
// string. Value holds exactly one of those, or nil for the Lox `nil`
// literal.
type Literal struct {
	Value any
}

func (*Literal) exprNode() {}
func (l *Literal) String() string {
	if l.Value == nil {
		return "nil"
	}
	switch v := l.Value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Unary is a prefix operator expression: `-right` or `!right`.
type Unary struct {
	Op    token.Token
	Right Expr
}

func (*Unary) exprNode() {}
func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Right)
}
func (u *Unary) Pos() token.Token { return u.Op }

// Binary is an infix arithmetic/comparison/equality expression.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Binary) exprNode() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right)
}
func (b *Binary) Pos() token.Token { return b.Op }

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner Expr
}

func (*Grouping) exprNode() {}
func (g *Grouping) String() string {
	return fmt.Sprintf("(group %s)", g.Inner)
}

// Variable is a reference to a named variable.
type Variable struct {
	Name token.Token
}

func (*Variable) exprNode() {}
func (v *Variable) String() string { return v.Name.Lexeme }
func (v *Variable) Pos() token.Token { return v.Name }

// Assign is `name = value`.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (*Assign) exprNode() {}
func (a *Assign) String() string {
	return fmt.Sprintf("(assign %s %s)", a.Name.Lexeme, a.Value)
}
func (a *Assign) Pos() token.Token { return a.Name }

// LogicalOp distinguishes `and` from `or` for a Logical node.
type LogicalOp int

const (
	LogicalOr LogicalOp = iota
	LogicalAnd
)

// Logical is a short-circuiting `and`/`or` expression. Kept as a single
// node type parameterized by LogicalOp, rather than two separate node
// types, so both operators share one evaluation rule with the operator
// threaded through as data.
type Logical struct {
	Left  Expr
	Op    token.Token
	Kind  LogicalOp
	Right Expr
}

func (*Logical) exprNode() {}
func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right)
}

// Call is a function/method/class invocation.
type Call struct {
	Callee Expr
	Paren  token.Token // for line/arity-error reporting
	Args   []Expr
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}
func (c *Call) Pos() token.Token { return c.Paren }

// Get is a property read: `object.name`.
type Get struct {
	Object Expr
	Name   token.Token
}

func (*Get) exprNode() {}
func (g *Get) String() string {
	return fmt.Sprintf("(get %s %s)", g.Object, g.Name.Lexeme)
}
func (g *Get) Pos() token.Token { return g.Name }

// Set is a property write: `object.name = value`.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (*Set) exprNode() {}
func (s *Set) String() string {
	return fmt.Sprintf("(set %s %s %s)", s.Object, s.Name.Lexeme, s.Value)
}
func (s *Set) Pos() token.Token { return s.Name }

// This is the `this` keyword expression inside a method body.
type This struct {
	Keyword token.Token
}

func (*This) exprNode() {}
func (t *This) String() string     { return "this" }
func (t *This) Pos() token.Token { return t.Keyword }

// Super is a `super.method` expression.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Super) exprNode() {}
func (s *Super) String() string {
	return fmt.Sprintf("(super %s)", s.Method.Lexeme)
}
func (s *Super) Pos() token.Token { return s.Keyword }
