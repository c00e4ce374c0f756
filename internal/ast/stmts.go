package ast

import (
	"strings"

	"github.com/loxlang/golox/internal/token"
)

// Expression is a bare expression statement.
type Expression struct {
	Expr Expr
}

func (*Expression) stmtNode() {}
func (e *Expression) String() string { return e.Expr.String() + ";" }

// Print is a `print expr;` statement.
type Print struct {
	Expr Expr
}

func (*Print) stmtNode() {}
func (p *Print) String() string { return "print " + p.Expr.String() + ";" }

// Var is a `var name = initializer;` declaration. Initializer is nil
// when the declaration has no initializer (binds to nil at runtime).
type Var struct {
	Name        token.Token
	Initializer Expr
}

func (*Var) stmtNode() {}
func (v *Var) String() string {
	if v.Initializer == nil {
		return "var " + v.Name.Lexeme + ";"
	}
	return "var " + v.Name.Lexeme + " = " + v.Initializer.String() + ";"
}

// Block is `{ stmts... }`.
type Block struct {
	Stmts []Stmt
}

func (*Block) stmtNode() {}
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Stmts {
		sb.WriteString("  " + s.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// If is `if (cond) then else`. Else is nil when there is no else branch.
type If struct {
	Condition  Expr
	Then       Stmt
	Else       Stmt
}

func (*If) stmtNode() {}
func (i *If) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// While is `while (cond) body`. Desugared `for` loops compile to this
// plus a wrapping Block.
type While struct {
	Condition Expr
	Body      Stmt
}

func (*While) stmtNode() {}
func (w *While) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// Function is a named function (or method, inside a Class) declaration.
type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (*Function) stmtNode() {}
func (f *Function) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Lexeme
	}
	s := "fun " + f.Name.Lexeme + "(" + strings.Join(names, ", ") + ") {\n"
	for _, st := range f.Body {
		s += "  " + st.String() + "\n"
	}
	return s + "}"
}

// Return is `return expr?;`. Value is nil for a bare `return;`.
type Return struct {
	Keyword token.Token
	Value   Expr
}

func (*Return) stmtNode() {}
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// Class is a class declaration. Superclass is nil when there is none.
type Class struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*Function
}

func (*Class) stmtNode() {}
func (c *Class) String() string {
	s := "class " + c.Name.Lexeme
	if c.Superclass != nil {
		s += " < " + c.Superclass.Name.Lexeme
	}
	s += " {\n"
	for _, m := range c.Methods {
		s += "  " + m.String() + "\n"
	}
	return s + "}"
}
