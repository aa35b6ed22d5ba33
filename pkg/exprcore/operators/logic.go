package operators

import (
	"errors"

	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

func registerLogic(r *Registry) error {
	return errors.Join(
		r.AddLazyBinaryOperator("&&", PrecedenceAnd, false, true, Fixed(ContextBoolean), func(s Scope, _ ContextType, lhs, rhs Thunk) (Thunk, error) {
			v, err := lhs.Eval(s, ContextBoolean)
			if err != nil {
				return nil, err
			}
			if !v.Truthy() {
				return Const(v), nil
			}
			return rhs, nil
		}),
		r.AddLazyFunction("and", Variadic, Fixed(ContextBoolean), shortCircuit(false)),
		r.AddFunctionalEquivalence("&&", "and"),

		r.AddLazyBinaryOperator("||", PrecedenceOr, false, true, Fixed(ContextBoolean), func(s Scope, _ ContextType, lhs, rhs Thunk) (Thunk, error) {
			v, err := lhs.Eval(s, ContextBoolean)
			if err != nil {
				return nil, err
			}
			if v.Truthy() {
				return Const(v), nil
			}
			return rhs, nil
		}),
		r.AddLazyFunction("or", Variadic, Fixed(ContextBoolean), shortCircuit(true)),
		r.AddFunctionalEquivalence("||", "or"),

		r.AddLazyUnaryOperator("!", PrecedenceUnary, false, true, Fixed(ContextBoolean), func(s Scope, _ ContextType, operand Thunk) (Thunk, error) {
			v, err := operand.Eval(s, ContextBoolean)
			if err != nil {
				return nil, err
			}
			return Const(value.Bool(!v.Truthy())), nil
		}),
	)
}

// shortCircuit builds the n-ary and (stopOn false) and or (stopOn true).
// Arguments are forced left to right in boolean context until one whose
// truth equals stopOn, which becomes the result. Spread arguments are tested
// element by element. The last argument is returned unforced.
func shortCircuit(stopOn bool) LazyFunc {
	return func(s Scope, _ ContextType, args []Thunk) (Thunk, error) {
		if len(args) == 0 {
			return Const(value.Bool(!stopOn)), nil
		}
		last := len(args) - 1
		for _, arg := range args[:last] {
			v, err := arg.Eval(s, ContextBoolean)
			if err != nil {
				return nil, err
			}
			if u, ok := value.Unwrap(v).(value.Unpacked); ok {
				for _, it := range u.Items() {
					if it.Truthy() == stopOn {
						return Const(it), nil
					}
				}
				continue
			}
			if v.Truthy() == stopOn {
				return Const(v), nil
			}
		}
		return spreadTail(args[last], stopOn), nil
	}
}

// spreadTail defers the last argument of and/or. When forced to a spread
// carrier it yields the first element whose truth equals stopOn, else the
// final element.
func spreadTail(th Thunk, stopOn bool) Thunk {
	return func(s Scope, t ContextType) (value.Value, error) {
		v, err := th.Eval(s, t)
		if err != nil {
			return nil, err
		}
		u, ok := value.Unwrap(v).(value.Unpacked)
		if !ok {
			return v, nil
		}
		items := u.Items()
		if len(items) == 0 {
			return value.Bool(!stopOn), nil
		}
		for _, it := range items[:len(items)-1] {
			if it.Truthy() == stopOn {
				return it, nil
			}
		}
		return items[len(items)-1], nil
	}
}
