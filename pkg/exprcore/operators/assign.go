package operators

import (
	"errors"

	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

func registerAssignment(r *Registry) error {
	return errors.Join(
		r.AddLazyBinaryOperator("=", PrecedenceAssign, false, false, Fixed(ContextLValue), assign),
		r.AddLazyBinaryOperator("+=", PrecedenceAssign, false, false, Fixed(ContextLValue), assignAdd),
		r.AddLazyBinaryOperator("<>", PrecedenceAssign, false, false, Fixed(ContextLValue), swap),
	)
}

// assign implements '='. The left side is evaluated as an assignable
// location before the right side is evaluated.
func assign(s Scope, _ ContextType, lhs, rhs Thunk) (Thunk, error) {
	target, err := lhs.Eval(s, ContextLValue)
	if err != nil {
		return nil, err
	}
	v, err := rhs.Eval(s, ContextNone)
	if err != nil {
		return nil, err
	}

	if pattern, ok := target.(value.ListConstructor); ok {
		if list, ok := value.Unwrap(v).(*value.List); ok {
			err := destructure(s, pattern.Targets(), list.Items(), func(_ value.Value, name string, item value.Value) (value.Value, error) {
				return value.Rebound(item, name), nil
			})
			if err != nil {
				return nil, err
			}
			return Const(value.True), nil
		}
	}

	if loc, ok := target.(value.LContainer); ok {
		if loc.Container == nil || !loc.Container.Put(loc.Address, v) {
			return Const(value.NullValue), nil
		}
		return Const(v), nil
	}

	name, err := value.AssertAssignable(target)
	if err != nil {
		return nil, err
	}
	bound := Const(value.Rebound(v, name))
	s.SetAnyVariable(name, bound)
	return bound, nil
}

// assignAdd implements '+='. A list or map held by the target grows in place
// so every alias observes the change; any other value is combined with add
// and rebound.
func assignAdd(s Scope, _ ContextType, lhs, rhs Thunk) (Thunk, error) {
	target, err := lhs.Eval(s, ContextLValue)
	if err != nil {
		return nil, err
	}
	v, err := rhs.Eval(s, ContextNone)
	if err != nil {
		return nil, err
	}

	if pattern, ok := target.(value.ListConstructor); ok {
		if list, ok := value.Unwrap(v).(*value.List); ok {
			err := destructure(s, pattern.Targets(), list.Items(), func(current value.Value, name string, item value.Value) (value.Value, error) {
				sum, err := value.Add(current, item)
				if err != nil {
					return nil, err
				}
				return value.Rebound(sum, name), nil
			})
			if err != nil {
				return nil, err
			}
			return Const(value.True), nil
		}
	}

	if loc, ok := target.(value.LContainer); ok {
		if loc.Container == nil {
			return nil, exerrors.Expression(exerrors.ErrUnresolvedContainer, "")
		}
		current := loc.Current()
		if app, ok := growable(current); ok {
			app.Append(v)
			return Const(current), nil
		}
		sum, err := value.Add(current, v)
		if err != nil {
			return nil, err
		}
		loc.Container.Put(loc.Address, sum)
		return Const(sum), nil
	}

	name, err := value.AssertAssignable(target)
	if err != nil {
		return nil, err
	}
	current := value.Unwrap(target)
	var bound Thunk
	if app, ok := growable(current); ok {
		app.Append(v)
		bound = Const(value.Rebound(current, name))
	} else {
		sum, err := value.Add(current, v)
		if err != nil {
			return nil, err
		}
		bound = Const(value.Rebound(sum, name))
	}
	s.SetAnyVariable(name, bound)
	return bound, nil
}

// swap implements '<>'. Both sides are evaluated as assignable locations and
// every value is captured before any variable is rebound.
func swap(s Scope, _ ContextType, lhs, rhs Thunk) (Thunk, error) {
	left, err := lhs.Eval(s, ContextLValue)
	if err != nil {
		return nil, err
	}
	right, err := rhs.Eval(s, ContextLValue)
	if err != nil {
		return nil, err
	}

	lp, lok := left.(value.ListConstructor)
	rp, rok := right.(value.ListConstructor)
	if lok && rok {
		lt, rt := lp.Targets(), rp.Targets()
		if err := checkUnpack(len(lt), len(rt)); err != nil {
			return nil, err
		}
		lnames, err := assignableNames(lt)
		if err != nil {
			return nil, err
		}
		rnames, err := assignableNames(rt)
		if err != nil {
			return nil, err
		}
		lvals, rvals := unwrapAll(lt), unwrapAll(rt)
		for i := range lnames {
			s.SetAnyVariable(lnames[i], Const(value.Rebound(rvals[i], lnames[i])))
			s.SetAnyVariable(rnames[i], Const(value.Rebound(lvals[i], rnames[i])))
		}
		return Const(value.True), nil
	}

	lname, err := value.AssertAssignable(left)
	if err != nil {
		return nil, err
	}
	rname, err := value.AssertAssignable(right)
	if err != nil {
		return nil, err
	}
	lval := value.Rebound(right, lname)
	rval := value.Rebound(left, rname)
	s.SetAnyVariable(lname, Const(lval))
	s.SetAnyVariable(rname, Const(rval))
	return Const(lval), nil
}

// destructure binds each target variable to combine(current, name, item).
// Arity and assignability are checked before anything is bound.
func destructure(s Scope, targets, items []value.Value, combine func(current value.Value, name string, item value.Value) (value.Value, error)) error {
	if err := checkUnpack(len(targets), len(items)); err != nil {
		return err
	}
	names, err := assignableNames(targets)
	if err != nil {
		return err
	}
	for i, name := range names {
		bound, err := combine(value.Unwrap(targets[i]), name, items[i])
		if err != nil {
			return err
		}
		s.SetAnyVariable(name, Const(bound))
	}
	return nil
}

func checkUnpack(targets, values int) error {
	switch {
	case targets < values:
		return exerrors.Expression(exerrors.ErrTooManyValues, "%d targets, %d values", targets, values)
	case targets > values:
		return exerrors.Expression(exerrors.ErrTooFewValues, "%d targets, %d values", targets, values)
	default:
		return nil
	}
}

func assignableNames(targets []value.Value) ([]string, error) {
	names := make([]string, len(targets))
	for i, tv := range targets {
		name, err := value.AssertAssignable(tv)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

func unwrapAll(vs []value.Value) []value.Value {
	out := make([]value.Value, len(vs))
	for i, v := range vs {
		out[i] = value.Unwrap(v)
	}
	return out
}

// growable returns v as an in-place appender when it is a list or map.
func growable(v value.Value) (value.Appender, bool) {
	switch x := v.(type) {
	case *value.List:
		return x, true
	case *value.Map:
		return x, true
	default:
		return nil, false
	}
}
