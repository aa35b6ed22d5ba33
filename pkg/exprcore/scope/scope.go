// Package scope is a reference host for the operator layer: a variable
// binding scope and tree-node helpers that evaluate the way a parser-built
// expression tree would.
//
// Nodes are operators.Thunk values. A node evaluated in ContextLValue
// produces the transient assignable shapes the assignment operators consume:
//
//	x          Var("x")                      value.Ref
//	[a, b]     List(Var("a"), Var("b"))      value.ListConstructor
//	l:0        Index(Var("l"), Lit(Int(0)))  value.LContainer
//
// Example:
//
//	reg := operators.NewDefault()
//	s := scope.New()
//	prog := scope.Seq(
//	    scope.Binary(reg, "=", scope.Var("x"), scope.Lit(value.NewList(value.Int(1)))),
//	    scope.Binary(reg, "+=", scope.Var("x"), scope.Lit(value.Int(2))),
//	)
//	v, err := prog.Eval(s, operators.ContextNone) // [1, 2]
package scope

import (
	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
	"github.com/randalmurphal/exprcore/pkg/exprcore/table"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// Bindings is a scope whose variables nodes can read.
type Bindings interface {
	operators.Scope

	// Binding returns the thunk bound to name.
	Binding(name string) (operators.Thunk, bool)
}

// Scope holds variable bindings. Methods are safe for concurrent use, but an
// evaluation that shares a Scope with another must be serialized by the
// caller; operators read and write bindings in several steps.
type Scope struct {
	vars *table.Table[string, operators.Thunk]
}

var _ Bindings = (*Scope)(nil)

// New creates an empty scope.
func New() *Scope {
	return &Scope{vars: table.New[string, operators.Thunk]()}
}

// SetAnyVariable binds name to bound.
func (s *Scope) SetAnyVariable(name string, bound operators.Thunk) {
	// scope tables are never frozen
	_ = s.vars.Register(name, bound)
}

// Binding returns the thunk bound to name.
func (s *Scope) Binding(name string) (operators.Thunk, bool) {
	return s.vars.Get(name)
}

// Set binds name to v.
func (s *Scope) Set(name string, v value.Value) {
	s.SetAnyVariable(name, operators.Const(value.Rebound(v, name)))
}

// Get evaluates the binding of name. Unbound names read as Null.
func (s *Scope) Get(name string) (value.Value, error) {
	th, ok := s.vars.Get(name)
	if !ok {
		return value.NullValue, nil
	}
	return th.Eval(s, operators.ContextNone)
}

// Has reports whether name is bound.
func (s *Scope) Has(name string) bool {
	return s.vars.Has(name)
}

// Names lists bound variables in binding order.
func (s *Scope) Names() []string {
	return s.vars.Keys()
}
