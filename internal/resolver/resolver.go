// Package resolver implements a static lexical-scope analysis pass: a
// second walk over the AST that computes, for every variable reference,
// how many enclosing environments to hop outward to find its binding
// (the scope-depth table the interpreter consumes). Errors are reported
// through an onError callback rather than aborting on the first one, so
// a single pass can surface every resolution error at once, and
// resolution is implemented as a single type-switch per AST kind rather
// than a `resolve` method attached to every node type.
package resolver

import (
	"github.com/loxlang/golox/internal/ast"
	"github.com/loxlang/golox/internal/token"
)

// FunctionType tracks what kind of function body is currently being
// resolved, to validate `return` usage.
type FunctionType int

const (
	FuncNone FunctionType = iota
	FuncFunction
	FuncMethod
	FuncInitializer
)

// ClassType tracks whether we're inside a class body (and whether it has
// a superclass), to validate `this`/`super` usage.
type ClassType int

const (
	ClassNone ClassType = iota
	ClassClass
	ClassSubclass
)

// ErrorHandler is invoked once per static-analysis error.
type ErrorHandler func(tok token.Token, message string)

// Resolver performs the static pass and accumulates a scope-depth table.
type Resolver struct {
	scopes    []map[string]bool
	locals    map[ast.Expr]int
	funcType  FunctionType
	classType ClassType
	onError   ErrorHandler
	hadErr    bool
}

// New constructs a Resolver. onError is called for every static error
// encountered; resolution continues afterward to surface as many errors
// as possible.
func New(onError ErrorHandler) *Resolver {
	if onError == nil {
		onError = func(token.Token, string) {}
	}
	return &Resolver{locals: make(map[ast.Expr]int), onError: onError}
}

// HadError reports whether any resolution error was reported.
func (r *Resolver) HadError() bool { return r.hadErr }

// Locals returns the scope-depth table: for each resolved Variable,
// Assign, This or Super expression, how many environments out from the
// current one its binding lives. Expressions not present in the map are
// globals.
func (r *Resolver) Locals() map[ast.Expr]int { return r.locals }

// Resolve runs the static pass over a parsed program.
func (r *Resolver) Resolve(prog *ast.Program) {
	for _, s := range prog.Stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(tok token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[tok.Lexeme]; ok {
		r.reportErr(tok, "Already a variable with this name in this scope.")
	}
	scope[tok.Lexeme] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treated as global at runtime.
}

func (r *Resolver) reportErr(tok token.Token, msg string) {
	r.hadErr = true
	r.onError(tok, msg)
}

// ------------------------------------------------------------------
// Statements
// ------------------------------------------------------------------

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)
	case *ast.Block:
		r.beginScope()
		for _, st := range s.Stmts {
			r.resolveStmt(st)
		}
		r.endScope()
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s, FuncFunction)
	case *ast.Return:
		if r.funcType == FuncNone {
			r.reportErr(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.funcType == FuncInitializer {
				r.reportErr(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.Class:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, typ FunctionType) {
	enclosing := r.funcType
	r.funcType = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param.Lexeme)
	}
	for _, st := range fn.Body {
		r.resolveStmt(st)
	}
	r.endScope()

	r.funcType = enclosing
}

func (r *Resolver) resolveClass(c *ast.Class) {
	enclosingClass := r.classType
	r.classType = ClassClass

	r.declare(c.Name)
	r.define(c.Name.Lexeme)

	if c.Superclass != nil {
		r.classType = ClassSubclass
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.reportErr(c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.define("super")
	}

	r.beginScope()
	r.define("this")

	for _, method := range c.Methods {
		typ := FuncMethod
		if method.Name.Lexeme == "init" {
			typ = FuncInitializer
		}
		r.resolveFunction(method, typ)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.classType = enclosingClass
}

// ------------------------------------------------------------------
// Expressions
// ------------------------------------------------------------------

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		// nothing to resolve
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.reportErr(e.Name, "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.classType == ClassNone {
			r.reportErr(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")
	case *ast.Super:
		switch r.classType {
		case ClassNone:
			r.reportErr(e.Keyword, "Can't use 'super' outside of a class.")
		case ClassClass:
			r.reportErr(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")
	default:
		panic("resolver: unhandled expression type")
	}
}
