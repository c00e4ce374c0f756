// Package environment implements Lox's variable-binding chain: a linked
// list of scopes, each mapping names to values, with lookups either
// walking the parent chain (globals) or hopping a fixed number of links
// outward (the distance the resolver computed). The backing map is
// github.com/dolthub/swiss rather than a builtin map. Get/Assign return
// a bool rather than erroring directly, since a miss should only ever
// surface as a runtime error at the interp layer, not here.
package environment

import (
	"github.com/dolthub/swiss"
	"github.com/loxlang/golox/internal/object"
)

// Environment is one scope in the chain: globals have Parent == nil.
type Environment struct {
	parent *Environment
	values *swiss.Map[string, object.Value]
}

// New creates a root environment (no parent) — used once, for globals.
func New() *Environment {
	return &Environment{values: swiss.NewMap[string, object.Value](8)}
}

// Child creates a new scope nested inside e, the way entering a block,
// calling a function, or binding a method to `this` does.
func (e *Environment) Child() *Environment {
	return &Environment{parent: e, values: swiss.NewMap[string, object.Value](8)}
}

// Define binds name to v in this scope, overwriting any existing
// binding — redeclaration is legal at the environment level; the
// resolver is what rejects it for local scopes, while the global scope
// allows it.
func (e *Environment) Define(name string, v object.Value) {
	e.values.Put(name, v)
}

// Get looks up name, walking outward through parents.
func (e *Environment) Get(name string) (object.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rebinds an existing name, walking outward through parents. It
// reports false if name is not bound anywhere in the chain.
func (e *Environment) Assign(name string, v object.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values.Get(name); ok {
			env.values.Put(name, v)
			return true
		}
	}
	return false
}

// Ancestor walks exactly distance parent links outward. The resolver
// guarantees distance is always a valid hop count for resolved
// variables, so a nil result here indicates an interpreter bug, not a
// Lox-level error.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name exactly distance scopes outward, for a resolved
// local variable reference.
func (e *Environment) GetAt(distance int, name string) (object.Value, bool) {
	return e.Ancestor(distance).values.Get(name)
}

// AssignAt rebinds name exactly distance scopes outward.
func (e *Environment) AssignAt(distance int, name string, v object.Value) {
	e.Ancestor(distance).values.Put(name, v)
}
