// Package ast defines the Lox abstract syntax tree: a sum-typed
// expression hierarchy (including Get/Set/This/Super) and a sum-typed
// statement hierarchy. Every node is always used by pointer, and the
// resolver keys its scope-depth table on that pointer identity — never
// on structural equality, since two syntactically identical expressions
// at different source positions must resolve independently.
package ast

import "github.com/loxlang/golox/internal/token"

// Expr is any expression node. Every concrete implementation is used as
// a pointer (e.g. *Binary), so two Expr values compare equal with == iff
// they are literally the same node — this identity, not structural
// equality, is what the resolver's scope-depth table keys on.
type Expr interface {
	exprNode()
	String() string
}

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
	String() string
}

// Program is the root of a parsed script: a sequence of declarations.
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	s := ""
	for _, stmt := range p.Stmts {
		s += stmt.String() + "\n"
	}
	return s
}

// Positioned is implemented by nodes whose Pos returns the token that
// most closely pinpoints where in the source the node sits, for
// diagnostics. Literal, Grouping and Logical do not implement it.
type Positioned interface {
	Pos() token.Token
}
