package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/loxlang/golox/internal/ast"
	"github.com/loxlang/golox/internal/environment"
	"github.com/loxlang/golox/internal/object"
	"github.com/loxlang/golox/internal/token"
)

// Callable is anything that can appear on the left of a call expression:
// a user-defined function or method, a class (calling it constructs an
// instance), or a native builtin. Call returns the value directly and
// signals a Lox runtime error by panicking a *RuntimeError, caught once
// at Interpreter.Run's boundary rather than threading an error return
// through every expression evaluation.
type Callable interface {
	object.Value
	Arity() int
	Call(i *Interpreter, args []object.Value) object.Value
}

// newMethodMap creates an empty method table for a class.
func newMethodMap() *swiss.Map[string, *Function] {
	return swiss.NewMap[string, *Function](4)
}

// Native is a builtin function implemented in Go, such as clock.
type Native struct {
	Name    string
	ArityN  int
	Fn      func(i *Interpreter, args []object.Value) object.Value
}

func (n *Native) TypeName() string { return "native function" }
func (n *Native) String() string   { return "<native fn " + n.Name + ">" }
func (n *Native) Arity() int       { return n.ArityN }
func (n *Native) Call(i *Interpreter, args []object.Value) object.Value {
	return n.Fn(i, args)
}

// Function is a user-defined function or method: the declaration plus
// the environment it closed over when defined.
type Function struct {
	Decl      *ast.Function
	Closure   *environment.Environment
	IsInit    bool
}

func (f *Function) TypeName() string { return "function" }
func (f *Function) String() string   { return "<fn " + f.Decl.Name.Lexeme + ">" }
func (f *Function) Arity() int       { return len(f.Decl.Params) }

// Call binds parameters in a fresh scope nested in the closure and
// executes the body. An initializer always returns `this` regardless of
// what the body's `return` (if any) produced.
func (f *Function) Call(i *Interpreter, args []object.Value) object.Value {
	env := f.Closure.Child()
	for idx, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[idx])
	}
	result := i.execBlock(f.Decl.Body, env)
	if f.IsInit {
		v, _ := f.Closure.GetAt(0, "this")
		return v
	}
	if result.returning {
		return result.value
	}
	return object.NilValue
}

// bind returns a copy of f whose closure additionally binds `this` to
// instance, the way a method looked up off an instance is bound before
// being called or stored.
func (f *Function) bind(instance *Instance) *Function {
	env := f.Closure.Child()
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInit: f.IsInit}
}

// Class is a Lox class: its methods (including a possible init) and an
// optional superclass to fall back to.
type Class struct {
	Name       string
	Superclass *Class
	Methods    *swiss.Map[string, *Function]
}

func (c *Class) TypeName() string { return "class" }
func (c *Class) String() string   { return c.Name }

// FindMethod looks up name on c, then walks the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods.Get(name); ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity defers to `init`'s arity, or 0 if the class declares none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance and runs its initializer, if any.
func (c *Class) Call(i *Interpreter, args []object.Value) object.Value {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		init.bind(instance).Call(i, args)
	}
	return instance
}

// Instance is a runtime instance of a Lox class: a bag of fields backed
// by the class's methods for anything not shadowed by a field, wired to
// github.com/dolthub/swiss the same way internal/environment is, rather
// than a builtin map.
type Instance struct {
	Class  *Class
	fields *swiss.Map[string, object.Value]
}

// NewInstance constructs a zero-field instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, fields: swiss.NewMap[string, object.Value](4)}
}

func (in *Instance) TypeName() string { return "instance" }
func (in *Instance) String() string   { return in.Class.Name + " instance" }

// Get reads a field, falling back to a bound method, and only reports
// an undefined-property error when neither a field nor a method is
// found.
func (in *Instance) Get(name token.Token) (object.Value, error) {
	if v, ok := in.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if method, ok := in.Class.FindMethod(name.Lexeme); ok {
		return method.bind(in), nil
	}
	return nil, &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}

// Set assigns a field on the instance, creating it if absent.
func (in *Instance) Set(name token.Token, v object.Value) {
	in.fields.Put(name.Lexeme, v)
}
