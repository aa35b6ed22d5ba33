package operators

import (
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// ContextType tells an operand what shape of result its consumer expects.
type ContextType int

const (
	// ContextNone requests a plain value.
	ContextNone ContextType = iota

	// ContextBoolean requests a value that will only be tested for truth.
	ContextBoolean

	// ContextLValue requests an assignable location: a variable ref, a
	// destructuring pattern, or an LContainer.
	ContextLValue

	// ContextLocalization requests a function signature element.
	ContextLocalization
)

// String returns the context name.
func (c ContextType) String() string {
	switch c {
	case ContextNone:
		return "none"
	case ContextBoolean:
		return "boolean"
	case ContextLValue:
		return "lvalue"
	case ContextLocalization:
		return "localization"
	default:
		return "unknown"
	}
}

// Selector maps the context an operator was evaluated in to the context it
// evaluates its operands in.
type Selector func(caller ContextType) ContextType

// Fixed returns a selector that always yields t.
func Fixed(t ContextType) Selector {
	return func(ContextType) ContextType { return t }
}

// Thunk is a suspended computation. Forcing it evaluates the underlying
// expression in the given scope and context.
type Thunk func(s Scope, t ContextType) (value.Value, error)

// Eval forces the thunk. A nil thunk evaluates to Null.
func (th Thunk) Eval(s Scope, t ContextType) (value.Value, error) {
	if th == nil {
		return value.NullValue, nil
	}
	return th(s, t)
}

// Const returns a thunk that always yields v.
func Const(v value.Value) Thunk {
	return func(Scope, ContextType) (value.Value, error) { return v, nil }
}

// Scope is the variable-binding facility supplied by the host.
type Scope interface {
	// SetAnyVariable binds name to the result of bound, creating the variable
	// if needed.
	SetAnyVariable(name string, bound Thunk)
}
