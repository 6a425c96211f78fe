package eval

import "quill/types"

// Environment manages variable bindings with nested scopes. Scope 0 is
// the global scope; during a user-function call exactly one call frame
// sits above it.
type Environment struct {
	vars   map[string]types.Value
	parent *Environment
}

// NewEnvironment creates a new environment with no parent (global scope)
func NewEnvironment() *Environment {
	return &Environment{
		vars: make(map[string]types.Value),
	}
}

// NewNestedEnvironment creates a new environment with a parent scope
func NewNestedEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]types.Value),
		parent: parent,
	}
}

// Get looks up a variable, searching innermost to outermost scope
func (e *Environment) Get(name string) (types.Value, bool) {
	if val, ok := e.vars[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// Define creates or overwrites a binding in this scope
func (e *Environment) Define(name string, value types.Value) {
	e.vars[name] = value
}

// Assign updates the nearest existing binding for the name; if no scope
// binds it yet, a new binding is created in this (innermost) scope
func (e *Environment) Assign(name string, value types.Value) {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.vars[name]; ok {
			scope.vars[name] = value
			return
		}
	}
	e.vars[name] = value
}

// Global returns the outermost scope
func (e *Environment) Global() *Environment {
	scope := e
	for scope.parent != nil {
		scope = scope.parent
	}
	return scope
}
