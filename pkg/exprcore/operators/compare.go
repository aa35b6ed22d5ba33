package operators

import (
	"errors"
	"slices"

	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

func registerComparison(r *Registry) error {
	return errors.Join(
		r.AddBinaryOperator(">", PrecedenceCompare, false, compareWith(greater)),
		r.AddFunction("decreasing", Variadic, chain(greater)),
		r.AddFunctionalEquivalence(">", "decreasing"),

		r.AddBinaryOperator(">=", PrecedenceCompare, false, compareWith(greaterOrEqual)),
		r.AddFunction("nonincreasing", Variadic, chain(greaterOrEqual)),
		r.AddFunctionalEquivalence(">=", "nonincreasing"),

		r.AddBinaryOperator("<", PrecedenceCompare, false, compareWith(less)),
		r.AddFunction("increasing", Variadic, chain(less)),
		r.AddFunctionalEquivalence("<", "increasing"),

		r.AddBinaryOperator("<=", PrecedenceCompare, false, compareWith(lessOrEqual)),
		r.AddFunction("nondecreasing", Variadic, chain(lessOrEqual)),
		r.AddFunctionalEquivalence("<=", "nondecreasing"),

		r.AddBinaryOperator("==", PrecedenceEqual, false, func(a, b value.Value) (value.Value, error) {
			return value.Bool(value.Equal(a, b)), nil
		}),
		r.AddFunction("equal", Variadic, equal),
		r.AddFunctionalEquivalence("==", "equal"),

		r.AddBinaryOperator("!=", PrecedenceEqual, false, func(a, b value.Value) (value.Value, error) {
			return value.Bool(!value.Equal(a, b)), nil
		}),
		r.AddFunction("unique", Variadic, unique),
		r.AddFunctionalEquivalence("!=", "unique"),
	)
}

func greater(c int) bool        { return c > 0 }
func greaterOrEqual(c int) bool { return c >= 0 }
func less(c int) bool           { return c < 0 }
func lessOrEqual(c int) bool    { return c <= 0 }

func compareWith(holds func(int) bool) BinaryFunc {
	return func(a, b value.Value) (value.Value, error) {
		return value.Bool(holds(value.Compare(a, b))), nil
	}
}

// chain checks that every adjacent pair, in argument order, satisfies holds.
func chain(holds func(int) bool) Func {
	return func(args []value.Value) (value.Value, error) {
		for i := 1; i < len(args); i++ {
			if !holds(value.Compare(args[i-1], args[i])) {
				return value.False, nil
			}
		}
		return value.True, nil
	}
}

func equal(args []value.Value) (value.Value, error) {
	for i := 1; i < len(args); i++ {
		if !value.Equal(args[i-1], args[i]) {
			return value.False, nil
		}
	}
	return value.True, nil
}

// unique reports whether no two arguments are equal.
//
// Numbers and bools are sorted and scanned pairwise, which also catches
// approximate values that are equal within epsilon but hash apart. Every
// other value is bucketed by hash; equal values always share a bucket.
func unique(args []value.Value) (value.Value, error) {
	var nums []value.Number
	buckets := make(map[uint64][]value.Value)
	for _, arg := range args {
		if n, ok := numberOrBool(arg); ok {
			nums = append(nums, n)
			continue
		}
		h := value.Hash(arg)
		for _, seen := range buckets[h] {
			if value.Equal(seen, arg) {
				return value.False, nil
			}
		}
		buckets[h] = append(buckets[h], arg)
	}

	slices.SortFunc(nums, func(a, b value.Number) int { return a.Compare(b) })
	for i := 1; i < len(nums); i++ {
		if nums[i-1].Equal(nums[i]) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func numberOrBool(v value.Value) (value.Number, bool) {
	switch x := value.Unwrap(v).(type) {
	case value.Number:
		return x, true
	case value.Bool:
		return x.Number(), true
	default:
		return value.Number{}, false
	}
}
