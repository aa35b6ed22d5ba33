package operators

import (
	"errors"

	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

func registerArithmetic(r *Registry) error {
	return errors.Join(
		r.AddBinaryOperator("+", PrecedenceAddition, true, value.Add),
		r.AddFunction("sum", Variadic, fold(value.Add)),
		r.AddFunctionalEquivalence("+", "sum"),

		r.AddBinaryOperator("-", PrecedenceAddition, true, value.Subtract),
		r.AddFunction("difference", Variadic, fold(value.Subtract)),
		r.AddFunctionalEquivalence("-", "difference"),

		r.AddBinaryOperator("*", PrecedenceMultiplication, true, value.Multiply),
		r.AddFunction("product", Variadic, fold(value.Multiply)),
		r.AddFunctionalEquivalence("*", "product"),

		r.AddBinaryOperator("/", PrecedenceMultiplication, true, value.Divide),
		r.AddFunction("quotient", Variadic, fold(value.Divide)),
		r.AddFunctionalEquivalence("/", "quotient"),

		r.AddBinaryOperator("%", PrecedenceMultiplication, true, value.Mod),
		r.AddBinaryOperator("^", PrecedenceExponent, false, value.Pow),

		r.AddBinaryOperator("~", PrecedenceAttribute, true, value.In),

		r.AddUnaryOperator("-", false, value.Negate),
		r.AddUnaryOperator("+", false, func(v value.Value) (value.Value, error) {
			return value.RequireNumber(v)
		}),
	)
}

// fold reduces args left to right with op. No arguments yield Null and a
// single argument is returned unchanged.
func fold(op BinaryFunc) Func {
	return func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.NullValue, nil
		}
		acc := args[0]
		for _, v := range args[1:] {
			next, err := op(acc, v)
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	}
}
