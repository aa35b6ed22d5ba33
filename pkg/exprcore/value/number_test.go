package value

import (
	"math"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/exprcore/pkg/exprcore/errors"
)

func TestEpsilon(t *testing.T) {
	assert.Greater(t, Epsilon(), 0.0)
	assert.Less(t, Epsilon(), 1e-13)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in    string
		exact bool
		f     float64
	}{
		{in: "2", exact: true, f: 2},
		{in: "2.0", exact: true, f: 2},
		{in: "-17", exact: true, f: -17},
		{in: "1e3", exact: true, f: 1000},
		{in: "2.5", exact: false, f: 2.5},
		{in: "0.1", exact: false, f: 0.1},
		{in: "9223372036854775807", exact: true, f: math.MaxInt64},
		{in: "9223372036854775808", exact: false, f: math.MaxInt64},
		{in: "1e400", exact: false, f: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseNumber(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.exact, n.IsExact())
			assert.Equal(t, tt.f, n.Float64())
		})
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1/2", "1_000", "--1"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseNumber(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrNotNumeric)
		})
	}
}

func TestNumberOf(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		exact bool
		str   string
	}{
		{name: "int", in: 5, exact: true, str: "5"},
		{name: "int64", in: int64(-9), exact: true, str: "-9"},
		{name: "uint8", in: uint8(200), exact: true, str: "200"},
		{name: "uint64 in range", in: uint64(math.MaxInt64), exact: true, str: "9223372036854775807"},
		{name: "integral float", in: 4.0, exact: true, str: "4"},
		{name: "float", in: 2.25, exact: false, str: "2.25"},
		{name: "float32", in: float32(0.1), exact: false, str: "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := NumberOf(tt.in).(Number)
			require.True(t, ok)
			assert.Equal(t, tt.exact, n.IsExact())
			assert.Equal(t, tt.str, n.String())
		})
	}

	assert.Equal(t, NullValue, NumberOf(nil))
	assert.Equal(t, NullValue, NumberOf("5"))

	for _, in := range []any{uint64(math.MaxUint64), uint64(math.MaxInt64) + 1} {
		n, ok := NumberOf(in).(Number)
		require.True(t, ok)
		assert.False(t, n.IsExact(), "%d", in)
		assert.Positive(t, n.Float64(), "%d", in)
	}
}

func TestExactnessPropagation(t *testing.T) {
	for a := int64(-20); a <= 20; a += 7 {
		for b := int64(-15); b <= 15; b += 4 {
			ea, eb := Int(a), Int(b)
			fa, fb := Float(float64(a)), Float(float64(b))

			sum, diff, prod := ea.Add(eb), ea.Sub(eb), ea.Mul(eb)
			assert.True(t, sum.IsExact())
			assert.True(t, diff.IsExact())
			assert.True(t, prod.IsExact())
			assert.True(t, sum.Equal(fa.Add(fb)))
			assert.True(t, diff.Equal(fa.Sub(fb)))
			assert.True(t, prod.Equal(fa.Mul(fb)))

			mixed := ea.Add(fb)
			assert.False(t, mixed.IsExact(), "exactness must not be reconstructed")
			assert.True(t, mixed.IsInteger())
		}
	}
}

func TestDivideIsApproximate(t *testing.T) {
	q := Int(6).Div(Int(3))
	assert.False(t, q.IsExact())
	assert.True(t, q.Equal(Int(2)))

	inf := Int(5).Div(Float(0))
	assert.True(t, math.IsInf(inf.Float64(), 1))
	assert.Equal(t, "INFINITY", inf.String())
}

func TestMod(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Number
		want  string
		exact bool
	}{
		{name: "exact", a: Int(7), b: Int(3), want: "1", exact: true},
		{name: "exact floor negative", a: Int(-7), b: Int(3), want: "2", exact: true},
		{name: "exact negative divisor", a: Int(7), b: Int(-3), want: "-2", exact: true},
		{name: "float", a: Float(5.5), b: Int(2), want: "1.5"},
		{name: "float floor negative", a: Float(-1.5), b: Int(1), want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Mod(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.exact, got.IsExact())
		})
	}
}

func TestMod_ZeroDivisor(t *testing.T) {
	_, err := Int(5).Mod(Float(0))
	require.Error(t, err)
	assert.True(t, errors.IsArithmetic(err))

	_, err = Int(5).Mod(Int(0))
	assert.ErrorIs(t, err, errors.ErrDivisionByZero)
}

func TestNumberEqualAndTruthy(t *testing.T) {
	tenthAgain := 0.1
	assert.True(t, Float(tenthAgain+0.2).Equal(Float(0.3)))
	assert.True(t, Int(1).Equal(Float(1)))
	assert.False(t, Int(1).Equal(Int(2)))
	assert.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
	assert.True(t, Float(math.NaN()).Equal(Int(5)))
	assert.True(t, Float(math.Inf(1)).Equal(Float(math.Inf(1))))
	assert.False(t, Float(math.Inf(1)).Equal(Int(5)))

	assert.False(t, Float(1e-15).Truthy())
	assert.True(t, Float(1e-3).Truthy())
	assert.False(t, Int(0).Truthy())
	assert.True(t, Int(-1).Truthy())
}

func TestNumberCompare(t *testing.T) {
	assert.Equal(t, -1, Int(1).Compare(Int(2)))
	assert.Equal(t, 0, Int(math.MaxInt64).Compare(Int(math.MaxInt64)))
	assert.Equal(t, 1, Int(math.MaxInt64).Compare(Int(math.MaxInt64-1)))
	assert.Equal(t, -1, Float(1.5).Compare(Int(2)))
	assert.Equal(t, 1, Float(math.NaN()).Compare(Float(math.Inf(1))))
	assert.Equal(t, -1, Float(math.Copysign(0, -1)).Compare(Float(0)))
}

func TestInt64(t *testing.T) {
	assert.Equal(t, int64(3), Float(2.9999999999999996).Int64())
	assert.Equal(t, int64(2), Float(2.7).Int64())
	assert.Equal(t, int64(-3), Float(-2.5).Int64())
	assert.Equal(t, int64(0), Float(math.NaN()).Int64())
	assert.Equal(t, int64(math.MaxInt64), Float(1e300).Int64())
	assert.Equal(t, int64(math.MinInt64), Float(-1e300).Int64())
	assert.Equal(t, int32(-1), Int(math.MaxUint32).Int32())
	assert.Equal(t, 3, Int(-12).Len())
}

func TestNeg(t *testing.T) {
	assert.True(t, Int(4).Neg().IsExact())
	assert.Equal(t, "-4", Int(4).Neg().String())
	assert.False(t, Float(4).Neg().IsExact())
}

func TestNumberString(t *testing.T) {
	third := Int(1).Div(Int(3))
	twoThirds := Int(2).Div(Int(3))
	tenthAgain := 0.1

	tests := []struct {
		name   string
		n      Number
		expect autogold.Value
	}{
		{name: "exact", n: Int(-42), expect: autogold.Expect("-42")},
		{name: "exact large", n: Int(math.MaxInt64), expect: autogold.Expect("9223372036854775807")},
		{name: "third", n: third, expect: autogold.Expect("0.333333333333")},
		{name: "two thirds", n: twoThirds, expect: autogold.Expect("0.666666666667")},
		{name: "round-off", n: Float(tenthAgain + 0.2), expect: autogold.Expect("0.3")},
		{name: "integral float", n: Float(2), expect: autogold.Expect("2")},
		{name: "negative", n: Float(-2.5), expect: autogold.Expect("-2.5")},
		{name: "large", n: Float(1e20), expect: autogold.Expect("100000000000000000000")},
		{name: "small", n: Float(0.000123), expect: autogold.Expect("0.000123")},
		{name: "tie to even down", n: Float(0.5000000000005), expect: autogold.Expect("0.5")},
		{name: "tie to even up", n: Float(0.5000000000015), expect: autogold.Expect("0.500000000002")},
		{name: "carry", n: Float(9.9999999999999), expect: autogold.Expect("10")},
		{name: "below epsilon", n: Float(1e-20), expect: autogold.Expect("0")},
		{name: "negative below epsilon", n: Float(-1e-20), expect: autogold.Expect("-0")},
		{name: "infinity", n: Float(math.Inf(1)), expect: autogold.Expect("INFINITY")},
		{name: "negative infinity", n: Float(math.Inf(-1)), expect: autogold.Expect("-INFINITY")},
		{name: "nan", n: Float(math.NaN()), expect: autogold.Expect("NaN")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect.Equal(t, tt.n.String())
		})
	}
}

func TestNumberPretty(t *testing.T) {
	assert.Equal(t, "3", Int(3).Pretty())
	assert.Equal(t, "3", Float(3).Pretty())
	assert.Equal(t, "3.1..", Float(3.14159).Pretty())
	assert.Equal(t, "-0.5..", Float(-0.5).Pretty())
}

func TestNumberNative(t *testing.T) {
	assert.Equal(t, int32(5), Int(5).Native())
	assert.Equal(t, int32(3), Float(3).Native())
	assert.Equal(t, int64(1)<<40, Int(1<<40).Native())
	assert.Equal(t, int64(math.MaxInt32-2), Int(math.MaxInt32-2).Native())
	assert.Equal(t, 2.5, Float(2.5).Native())

	assert.Equal(t, int64(7), Int(7).JSON())
	assert.Equal(t, 0.25, Float(0.25).JSON())
}
