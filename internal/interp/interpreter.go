// Package interp implements the tree-walking evaluator: a single
// type-switch per AST kind (no visitor methods on the nodes themselves),
// consuming the resolver's scope-depth table to decide between a fast
// bounded-hop environment lookup and a global-environment fallback.
// `return` unwinds out of nested blocks/loops via an explicit sum-typed
// execResult rather than a language-level exception, and runtime errors
// propagate via a single panic/recover boundary in Run rather than an
// error return threaded through every evaluation method.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/loxlang/golox/internal/ast"
	"github.com/loxlang/golox/internal/environment"
	"github.com/loxlang/golox/internal/object"
	"github.com/loxlang/golox/internal/token"
)

// execResult is the sum-typed outcome of running a statement: either
// "keep going" (the zero value) or "a return statement fired, unwind to
// the nearest function call with this value."
type execResult struct {
	returning bool
	value     object.Value
}

var noResult = execResult{}

// Interpreter walks a resolved AST and evaluates it against a live
// environment chain, printing via Stdout.
type Interpreter struct {
	Stdout  io.Writer
	globals *environment.Environment
	env     *environment.Environment
	locals  map[ast.Expr]int
}

// New constructs an Interpreter with globals pre-populated with the
// built-in native functions (clock).
func New(stdout io.Writer, locals map[ast.Expr]int) *Interpreter {
	globals := environment.New()
	globals.Define("clock", &Native{
		Name:   "clock",
		ArityN: 0,
		Fn: func(i *Interpreter, args []object.Value) object.Value {
			return object.Number(float64(time.Now().UnixNano()) / 1e9)
		},
	})
	if locals == nil {
		locals = map[ast.Expr]int{}
	}
	return &Interpreter{Stdout: stdout, globals: globals, env: globals, locals: locals}
}

// MergeLocals adds a freshly resolved scope-depth table to the
// interpreter's own, without discarding entries from previously run
// programs — the REPL resolves and merges one line at a time while
// reusing a single long-lived Interpreter so earlier declarations stay
// visible.
func (i *Interpreter) MergeLocals(locals map[ast.Expr]int) {
	for expr, depth := range locals {
		i.locals[expr] = depth
	}
}

// Run executes a program's top-level statements against the global
// environment, recovering a *RuntimeError raised anywhere during
// evaluation and returning it as a plain error instead of letting the
// panic escape — the single recover boundary described above.
func (i *Interpreter) Run(prog *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*RuntimeError); ok {
				err = rerr
				return
			}
			panic(r)
		}
	}()
	for _, s := range prog.Stmts {
		i.execStmt(s, i.env)
	}
	return nil
}

// ------------------------------------------------------------------
// Statements
// ------------------------------------------------------------------

func (i *Interpreter) execStmt(s ast.Stmt, env *environment.Environment) execResult {
	switch s := s.(type) {
	case *ast.Expression:
		i.evalExpr(s.Expr, env)
		return noResult
	case *ast.Print:
		v := i.evalExpr(s.Expr, env)
		fmt.Fprintln(i.Stdout, stringify(v))
		return noResult
	case *ast.Var:
		var v object.Value = object.NilValue
		if s.Initializer != nil {
			v = i.evalExpr(s.Initializer, env)
		}
		env.Define(s.Name.Lexeme, v)
		return noResult
	case *ast.Block:
		return i.execBlock(s.Stmts, env.Child())
	case *ast.If:
		if object.IsTruthy(i.evalExpr(s.Condition, env)) {
			return i.execStmt(s.Then, env)
		} else if s.Else != nil {
			return i.execStmt(s.Else, env)
		}
		return noResult
	case *ast.While:
		for object.IsTruthy(i.evalExpr(s.Condition, env)) {
			if r := i.execStmt(s.Body, env); r.returning {
				return r
			}
		}
		return noResult
	case *ast.Function:
		fn := &Function{Decl: s, Closure: env}
		env.Define(s.Name.Lexeme, fn)
		return noResult
	case *ast.Return:
		var v object.Value = object.NilValue
		if s.Value != nil {
			v = i.evalExpr(s.Value, env)
		}
		return execResult{returning: true, value: v}
	case *ast.Class:
		i.execClass(s, env)
		return noResult
	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// execBlock runs stmts in env, propagating the first return it sees
// without running the statements after it — the mechanism by which a
// `return` inside nested blocks/loops unwinds to the calling Function.Call.
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *environment.Environment) execResult {
	for _, s := range stmts {
		if r := i.execStmt(s, env); r.returning {
			return r
		}
	}
	return noResult
}

func (i *Interpreter) execClass(c *ast.Class, env *environment.Environment) {
	var superclass *Class
	if c.Superclass != nil {
		v := i.evalExpr(c.Superclass, env)
		sc, ok := v.(*Class)
		if !ok {
			throw(c.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	env.Define(c.Name.Lexeme, object.NilValue)

	methodEnv := env
	if c.Superclass != nil {
		methodEnv = env.Child()
		methodEnv.Define("super", superclass)
	}

	methods := newMethodMap()
	for _, m := range c.Methods {
		fn := &Function{Decl: m, Closure: methodEnv, IsInit: m.Name.Lexeme == "init"}
		methods.Put(m.Name.Lexeme, fn)
	}

	class := &Class{Name: c.Name.Lexeme, Superclass: superclass, Methods: methods}
	env.Assign(c.Name.Lexeme, class)
}

// ------------------------------------------------------------------
// Expressions
// ------------------------------------------------------------------

func (i *Interpreter) evalExpr(e ast.Expr, env *environment.Environment) object.Value {
	switch e := e.(type) {
	case *ast.Literal:
		return literalValue(e.Value)
	case *ast.Grouping:
		return i.evalExpr(e.Inner, env)
	case *ast.Unary:
		return i.evalUnary(e, env)
	case *ast.Binary:
		return i.evalBinary(e, env)
	case *ast.Logical:
		return i.evalLogical(e, env)
	case *ast.Variable:
		return i.lookupVariable(e.Name, e, env)
	case *ast.Assign:
		v := i.evalExpr(e.Value, env)
		if dist, ok := i.locals[e]; ok {
			env.AssignAt(dist, e.Name.Lexeme, v)
		} else if !i.globals.Assign(e.Name.Lexeme, v) {
			throw(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return v
	case *ast.Call:
		return i.evalCall(e, env)
	case *ast.Get:
		obj := i.evalExpr(e.Object, env)
		instance, ok := obj.(*Instance)
		if !ok {
			throw(e.Name, "Only instances have properties.")
		}
		v, err := instance.Get(e.Name)
		if err != nil {
			panic(err)
		}
		return v
	case *ast.Set:
		obj := i.evalExpr(e.Object, env)
		instance, ok := obj.(*Instance)
		if !ok {
			throw(e.Name, "Only instances have fields.")
		}
		v := i.evalExpr(e.Value, env)
		instance.Set(e.Name, v)
		return v
	case *ast.This:
		return i.lookupVariable(e.Keyword, e, env)
	case *ast.Super:
		return i.evalSuper(e, env)
	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", e))
	}
}

func literalValue(v any) object.Value {
	switch v := v.(type) {
	case nil:
		return object.NilValue
	case bool:
		return object.Bool(v)
	case float64:
		return object.Number(v)
	case string:
		return object.String(v)
	default:
		panic(fmt.Sprintf("interp: unhandled literal type %T", v))
	}
}

func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expr, env *environment.Environment) object.Value {
	if dist, ok := i.locals[expr]; ok {
		v, _ := env.GetAt(dist, name.Lexeme)
		return v
	}
	v, ok := i.globals.Get(name.Lexeme)
	if !ok {
		throw(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return v
}

func (i *Interpreter) evalUnary(e *ast.Unary, env *environment.Environment) object.Value {
	right := i.evalExpr(e.Right, env)
	switch e.Op.Kind {
	case token.Minus:
		n, ok := right.(object.Number)
		if !ok {
			throw(e.Op, "Operand must be a number.")
		}
		return -n
	case token.Bang:
		return object.Bool(!object.IsTruthy(right))
	default:
		panic("interp: unhandled unary operator " + e.Op.Lexeme)
	}
}

func (i *Interpreter) evalLogical(e *ast.Logical, env *environment.Environment) object.Value {
	left := i.evalExpr(e.Left, env)
	if e.Kind == ast.LogicalOr {
		if object.IsTruthy(left) {
			return left
		}
	} else {
		if !object.IsTruthy(left) {
			return left
		}
	}
	return i.evalExpr(e.Right, env)
}

func (i *Interpreter) evalBinary(e *ast.Binary, env *environment.Environment) object.Value {
	left := i.evalExpr(e.Left, env)
	right := i.evalExpr(e.Right, env)

	switch e.Op.Kind {
	case token.Minus:
		l, r := numberOperands(i, e.Op, left, right)
		return l - r
	case token.Slash:
		l, r := numberOperands(i, e.Op, left, right)
		return l / r
	case token.Star:
		l, r := numberOperands(i, e.Op, left, right)
		return l * r
	case token.Plus:
		if ln, ok := left.(object.Number); ok {
			if rn, ok := right.(object.Number); ok {
				return ln + rn
			}
		}
		if ls, ok := left.(object.String); ok {
			if rs, ok := right.(object.String); ok {
				return ls + rs
			}
		}
		throw(e.Op, "Operands must be two numbers or two strings.")
	case token.Greater:
		l, r := numberOperands(i, e.Op, left, right)
		return object.Bool(l > r)
	case token.GreaterEqual:
		l, r := numberOperands(i, e.Op, left, right)
		return object.Bool(l >= r)
	case token.Less:
		l, r := numberOperands(i, e.Op, left, right)
		return object.Bool(l < r)
	case token.LessEqual:
		l, r := numberOperands(i, e.Op, left, right)
		return object.Bool(l <= r)
	case token.BangEqual:
		return object.Bool(!object.Equal(left, right))
	case token.EqualEqual:
		return object.Bool(object.Equal(left, right))
	default:
		panic("interp: unhandled binary operator " + e.Op.Lexeme)
	}
	panic("unreachable")
}

func numberOperands(i *Interpreter, op token.Token, left, right object.Value) (object.Number, object.Number) {
	l, lok := left.(object.Number)
	r, rok := right.(object.Number)
	if !lok || !rok {
		throw(op, "Operands must be numbers.")
	}
	return l, r
}

func (i *Interpreter) evalCall(e *ast.Call, env *environment.Environment) object.Value {
	callee := i.evalExpr(e.Callee, env)
	args := make([]object.Value, len(e.Args))
	for idx, a := range e.Args {
		args[idx] = i.evalExpr(a, env)
	}

	fn, ok := callee.(Callable)
	if !ok {
		throw(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		throw(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(i, args)
}

func (i *Interpreter) evalSuper(e *ast.Super, env *environment.Environment) object.Value {
	dist := i.locals[e]
	v, _ := env.GetAt(dist, "super")
	superclass := v.(*Class)

	instVal, _ := env.GetAt(dist-1, "this")
	instance := instVal.(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		throw(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance)
}

// stringify renders a value the way Lox's `print` does, which for
// object.Value is just its String() form — kept as a thin wrapper so
// future print-only formatting (e.g. distinguishing nil at the top
// level) has a single place to live.
func stringify(v object.Value) string {
	return v.String()
}
