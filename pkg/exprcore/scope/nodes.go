package scope

import (
	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// Lit is a literal node.
func Lit(v value.Value) operators.Thunk {
	return operators.Const(v)
}

// Var reads a variable. In ContextLValue it yields a value.Ref naming the
// variable and carrying its current value; unbound variables read as Null.
func Var(name string) operators.Thunk {
	return func(s operators.Scope, t operators.ContextType) (value.Value, error) {
		current := value.NullValue
		if b, ok := s.(Bindings); ok {
			if th, found := b.Binding(name); found {
				v, err := th.Eval(s, operators.ContextNone)
				if err != nil {
					return nil, err
				}
				current = v
			}
		}
		if t == operators.ContextLValue {
			return value.NewRef(name, current), nil
		}
		return current, nil
	}
}

// List is a list literal. In ContextLValue its items are evaluated as
// assignable locations and it yields a destructuring pattern.
func List(items ...operators.Thunk) operators.Thunk {
	return func(s operators.Scope, t operators.ContextType) (value.Value, error) {
		itemCtx := operators.ContextNone
		if t == operators.ContextLValue {
			itemCtx = operators.ContextLValue
		}
		vals := make([]value.Value, len(items))
		for i, item := range items {
			v, err := item.Eval(s, itemCtx)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		if t == operators.ContextLValue {
			return value.NewListConstructor(vals...), nil
		}
		return value.NewList(vals...), nil
	}
}

// Index addresses an element of a container. In ContextLValue it yields a
// value.LContainer; a non-container target gives a location with no
// container.
func Index(container, address operators.Thunk) operators.Thunk {
	return func(s operators.Scope, t operators.ContextType) (value.Value, error) {
		c, err := container.Eval(s, operators.ContextNone)
		if err != nil {
			return nil, err
		}
		a, err := address.Eval(s, operators.ContextNone)
		if err != nil {
			return nil, err
		}
		target, ok := value.Unwrap(c).(value.Container)
		if t == operators.ContextLValue {
			if !ok {
				return value.LContainer{Address: a}, nil
			}
			return value.LContainer{Container: target, Address: a}, nil
		}
		if !ok {
			return value.NullValue, nil
		}
		return target.Get(a), nil
	}
}

// Binary applies an infix operator from r. The operator result is forced in
// the caller's context.
func Binary(r *operators.Registry, symbol string, lhs, rhs operators.Thunk) operators.Thunk {
	return func(s operators.Scope, t operators.ContextType) (value.Value, error) {
		op, ok := r.BinaryOperator(symbol)
		if !ok {
			return nil, exerrors.Expression(exerrors.ErrUnknownFunction, "no binary operator %q", symbol)
		}
		res, err := op.Apply(s, t, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return res.Eval(s, t)
	}
}

// Unary applies a prefix operator from r.
func Unary(r *operators.Registry, symbol string, operand operators.Thunk) operators.Thunk {
	return func(s operators.Scope, t operators.ContextType) (value.Value, error) {
		op, ok := r.UnaryOperator(symbol)
		if !ok {
			return nil, exerrors.Expression(exerrors.ErrUnknownFunction, "no unary operator %q", symbol)
		}
		res, err := op.Apply(s, t, operand)
		if err != nil {
			return nil, err
		}
		return res.Eval(s, t)
	}
}

// Call applies a function from r.
func Call(r *operators.Registry, name string, args ...operators.Thunk) operators.Thunk {
	return func(s operators.Scope, t operators.ContextType) (value.Value, error) {
		fn, ok := r.Function(name)
		if !ok {
			return nil, exerrors.Expression(exerrors.ErrUnknownFunction, "%s", name)
		}
		res, err := fn.Apply(s, t, args)
		if err != nil {
			return nil, err
		}
		return res.Eval(s, t)
	}
}

// Seq evaluates nodes in order and yields the last result.
func Seq(nodes ...operators.Thunk) operators.Thunk {
	return func(s operators.Scope, t operators.ContextType) (value.Value, error) {
		result := value.NullValue
		for _, n := range nodes {
			v, err := n.Eval(s, t)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	}
}
