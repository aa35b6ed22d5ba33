package value

import (
	"github.com/randalmurphal/exprcore/pkg/exprcore/errors"
)

// Kind identifies a value variant.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindString
	KindList
	KindListConstructor
	KindMap
	KindAnnotation
	KindUnpacked
	KindLContainer
)

// String returns the type name shown to script authors.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList, KindListConstructor:
		return "list"
	case KindMap:
		return "map"
	case KindAnnotation:
		return "annotation"
	case KindUnpacked:
		return "unpacked"
	case KindLContainer:
		return "lcontainer"
	default:
		return "unknown"
	}
}

// Value is the result of evaluating any expression.
// Implementations are restricted to this package.
type Value interface {
	// Kind reports the variant.
	Kind() Kind

	// String returns the canonical text form.
	String() string

	// Pretty returns the abbreviated human-readable form.
	Pretty() string

	// Truthy reports the boolean interpretation.
	Truthy() bool

	isValue()
}

// Ref is a value bound to a variable name.
// Evaluating a plain variable in assignable context yields a Ref carrying the
// variable's current value; binding a value to a variable stores a Ref.
type Ref struct {
	name string
	val  Value
}

// NewRef binds v to name. Nested refs collapse to the innermost value.
func NewRef(name string, v Value) Ref {
	return Ref{name: name, val: Unwrap(v)}
}

// Name returns the bound variable name.
func (r Ref) Name() string { return r.name }

// Value returns the referenced value, never a Ref.
func (r Ref) Value() Value {
	if r.val == nil {
		return NullValue
	}
	return r.val
}

func (r Ref) Kind() Kind     { return r.Value().Kind() }
func (r Ref) String() string { return r.Value().String() }
func (r Ref) Pretty() string { return r.Value().Pretty() }
func (r Ref) Truthy() bool   { return r.Value().Truthy() }
func (Ref) isValue()         {}

// Unwrap strips variable bindings from v. A nil v unwraps to Null.
func Unwrap(v Value) Value {
	for {
		switch r := v.(type) {
		case nil:
			return NullValue
		case Ref:
			v = r.val
		default:
			return v
		}
	}
}

// IsNull reports whether v is the Null value.
func IsNull(v Value) bool {
	_, ok := Unwrap(v).(Null)
	return ok
}

// Variable returns the variable name v is bound to.
func Variable(v Value) (string, bool) {
	r, ok := v.(Ref)
	if !ok {
		return "", false
	}
	return r.name, r.name != ""
}

// AssertAssignable returns the variable name v refers to, or an error if v is
// not a bare variable reference.
func AssertAssignable(v Value) (string, error) {
	name, ok := Variable(v)
	if !ok {
		return "", errors.Expression(errors.ErrNotAssignable, "cannot assign to %s", describe(v))
	}
	return name, nil
}

// Rebound returns v bound to name. The content of v is unchanged; containers
// keep their identity.
func Rebound(v Value, name string) Value {
	return NewRef(name, v)
}

// describe renders v for error messages.
func describe(v Value) string {
	u := Unwrap(v)
	switch u.Kind() {
	case KindString, KindNumber, KindBool:
		return u.Kind().String() + " " + u.String()
	default:
		return u.Kind().String()
	}
}
