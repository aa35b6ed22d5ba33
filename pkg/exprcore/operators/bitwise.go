package operators

import (
	"errors"
	"math"
	"math/bits"

	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

func registerBitwise(r *Registry) error {
	return errors.Join(
		r.AddFunction("bitwise_and", Variadic, foldInt(func(a, b int64) int64 { return a & b })),
		r.AddFunction("bitwise_xor", Variadic, foldInt(func(a, b int64) int64 { return a ^ b })),
		r.AddFunction("bitwise_or", Variadic, foldInt(func(a, b int64) int64 { return a | b })),

		r.AddMathematicalBinaryIntFunction("bitwise_shift_left", func(num, amount int64) int64 {
			return num << (amount & 63)
		}),
		r.AddMathematicalBinaryIntFunction("bitwise_shift_right", func(num, amount int64) int64 {
			return num >> (amount & 63)
		}),
		r.AddMathematicalBinaryIntFunction("bitwise_roll_left", rollLeft),
		r.AddMathematicalBinaryIntFunction("bitwise_roll_right", func(num, amount int64) int64 {
			return rollLeft(num, -(amount % 64))
		}),
		r.AddMathematicalUnaryIntFunction("bitwise_not", func(num int64) int64 { return ^num }),
		r.AddMathematicalUnaryIntFunction("bitwise_popcount", func(num int64) int64 {
			return int64(bits.OnesCount64(uint64(num)))
		}),

		r.AddUnaryFunction("double_to_long_bits", func(v value.Value) (value.Value, error) {
			n, err := value.RequireNumber(v)
			if err != nil {
				return nil, err
			}
			return value.Int(int64(math.Float64bits(n.Float64()))), nil
		}),
		r.AddUnaryFunction("long_to_double_bits", func(v value.Value) (value.Value, error) {
			n, err := value.RequireNumber(v)
			if err != nil {
				return nil, err
			}
			return value.Float(math.Float64frombits(uint64(n.Int64()))), nil
		}),
	)
}

// rollLeft rotates num left by amount mod 64; a negative amount rotates right.
func rollLeft(num, amount int64) int64 {
	return int64(bits.RotateLeft64(uint64(num), int(amount%64)))
}

// foldInt reduces the 64-bit integer forms of args left to right.
func foldInt(op func(a, b int64) int64) Func {
	return func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.NullValue, nil
		}
		first, err := value.RequireNumber(args[0])
		if err != nil {
			return nil, err
		}
		acc := first.Int64()
		for _, v := range args[1:] {
			n, err := value.RequireNumber(v)
			if err != nil {
				return nil, err
			}
			acc = op(acc, n.Int64())
		}
		return value.Int(acc), nil
	}
}
