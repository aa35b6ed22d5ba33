package operators_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
	"github.com/randalmurphal/exprcore/pkg/exprcore/scope"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

func TestArithmeticOperators(t *testing.T) {
	r := operators.NewDefault()

	tests := []struct {
		name string
		node operators.Thunk
		want string
	}{
		{name: "add exact", node: scope.Binary(r, "+", num(2), num(3)), want: "5"},
		{name: "add mixed", node: scope.Binary(r, "+", num(2), flt(0.5)), want: "2.5"},
		{name: "subtract", node: scope.Binary(r, "-", num(2), num(5)), want: "-3"},
		{name: "multiply", node: scope.Binary(r, "*", num(6), num(7)), want: "42"},
		{name: "divide is approximate", node: scope.Binary(r, "/", num(1), num(3)), want: "0.333333333333"},
		{name: "divide by zero", node: scope.Binary(r, "/", num(5), flt(0)), want: "INFINITY"},
		{name: "mod floor", node: scope.Binary(r, "%", num(-7), num(3)), want: "2"},
		{name: "mod negative divisor", node: scope.Binary(r, "%", num(7), num(-3)), want: "-2"},
		{name: "mod float", node: scope.Binary(r, "%", flt(5.5), num(2)), want: "1.5"},
		{name: "pow", node: scope.Binary(r, "^", num(2), num(10)), want: "1024"},
		{name: "string concat", node: scope.Binary(r, "+", str("a"), num(1)), want: "a1"},
		{name: "string remove", node: scope.Binary(r, "-", str("foobarfoo"), str("foo")), want: "barfoo"},
		{name: "string repeat", node: scope.Binary(r, "*", str("ab"), num(3)), want: "ababab"},
		{name: "list elementwise", node: scope.Binary(r, "+", lit(value.NewList(value.Int(1), value.Int(2))), lit(value.NewList(value.Int(10), value.Int(20)))), want: "[11, 22]"},
		{name: "list broadcast", node: scope.Binary(r, "*", lit(value.NewList(value.Int(1), value.Int(2))), num(3)), want: "[3, 6]"},
		{name: "null is zero", node: scope.Binary(r, "+", lit(value.NullValue), num(4)), want: "4"},
		{name: "negate", node: scope.Unary(r, "-", num(4)), want: "-4"},
		{name: "unary plus", node: scope.Unary(r, "+", lit(value.True)), want: "1"},
		{name: "sum", node: scope.Call(r, "sum", num(1), num(2), num(3)), want: "6"},
		{name: "difference", node: scope.Call(r, "difference", num(10), num(1), num(2)), want: "7"},
		{name: "product", node: scope.Call(r, "product", num(2), num(3), num(4)), want: "24"},
		{name: "quotient", node: scope.Call(r, "quotient", num(100), num(10), num(4)), want: "2.5"},
		{name: "sum of one", node: scope.Call(r, "sum", str("x")), want: "x"},
		{name: "sum of none", node: scope.Call(r, "sum"), want: "null"},
		{name: "in list", node: scope.Binary(r, "~", lit(value.NewList(value.String("a"), value.String("b"))), str("b")), want: "1"},
		{name: "in string", node: scope.Binary(r, "~", str("abc123"), str("\\d+")), want: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustEval(t, scope.New(), tt.node)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestArithmeticExactness(t *testing.T) {
	r := operators.NewDefault()
	s := scope.New()

	sum := mustEval(t, s, scope.Binary(r, "+", num(math.MaxInt64-1), num(1))).(value.Number)
	assert.True(t, sum.IsExact())
	assert.Equal(t, int64(math.MaxInt64), sum.Int64())

	quot := mustEval(t, s, scope.Binary(r, "/", num(6), num(3))).(value.Number)
	assert.False(t, quot.IsExact())
	assert.Equal(t, 2.0, quot.Float64())

	pow := mustEval(t, s, scope.Binary(r, "^", num(2), num(2))).(value.Number)
	assert.False(t, pow.IsExact())
}

func TestModuloByZero(t *testing.T) {
	r := operators.NewDefault()

	for name, divisor := range map[string]operators.Thunk{"exact": num(0), "float": flt(0)} {
		t.Run(name, func(t *testing.T) {
			_, err := scope.Binary(r, "%", num(5), divisor).Eval(scope.New(), operators.ContextNone)
			require.Error(t, err)
			assert.ErrorIs(t, err, exerrors.ErrDivisionByZero)
			assert.True(t, exerrors.IsArithmetic(err))
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	r := operators.NewDefault()

	tests := []struct {
		name string
		node operators.Thunk
		want error
	}{
		{name: "map plus number", node: scope.Binary(r, "+", lit(value.NewMap()), num(1)), want: exerrors.ErrUnsupportedOperation},
		{name: "uneven lists", node: scope.Binary(r, "-", lit(value.NewList(value.Int(1))), lit(value.NewList())), want: exerrors.ErrUnevenLists},
		{name: "negate string", node: scope.Unary(r, "-", str("a")), want: exerrors.ErrNotNumeric},
		{name: "pow string", node: scope.Binary(r, "^", str("a"), num(2)), want: exerrors.ErrNotNumeric},
		{name: "sum fails midway", node: scope.Call(r, "sum", num(1), lit(value.NewMap())), want: exerrors.ErrUnsupportedOperation},
		{name: "bad pattern", node: scope.Binary(r, "~", str("abc"), str("(")), want: exerrors.ErrUnsupportedOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.node.Eval(scope.New(), operators.ContextNone)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, exerrors.IsSemantic(err))
		})
	}
}

func TestFunctionalEquivalence_Agrees(t *testing.T) {
	r := operators.NewDefault()
	pairs := [][2]value.Value{
		{value.Int(7), value.Int(2)},
		{value.Float(1.5), value.Int(-3)},
		{value.String("ab"), value.Int(2)},
		{value.NewList(value.Int(1), value.Int(2)), value.Int(2)},
		{value.True, value.Float(0.25)},
	}

	for _, info := range r.BinaryOperators() {
		fn, ok := r.FunctionalEquivalent(info.Symbol)
		if !ok || info.Lazy {
			continue
		}
		t.Run(info.Symbol, func(t *testing.T) {
			for _, p := range pairs {
				opV, opErr := scope.Binary(r, info.Symbol, lit(p[0]), lit(p[1])).Eval(scope.New(), operators.ContextNone)
				fnV, fnErr := scope.Call(r, fn, lit(p[0]), lit(p[1])).Eval(scope.New(), operators.ContextNone)
				if opErr != nil {
					assert.Error(t, fnErr)
					continue
				}
				require.NoError(t, fnErr)
				assert.True(t, value.Equal(opV, fnV), "%s %s %s: %s vs %s", p[0], info.Symbol, p[1], opV, fnV)
			}
		})
	}
}
