package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/randalmurphal/exprcore/pkg/exprcore/errors"
)

// tenth is a variable so the expression below is evaluated in float64, not as
// an exact constant.
var tenth = 0.1

// epsilon is the float tolerance used by equality and truthiness: the
// round-off of 7*0.1*10-7 scaled by 32.
var epsilon = math.Abs(32 * ((7*tenth)*10 - 7))

// Epsilon returns the tolerance used by numeric equality and truthiness.
func Epsilon() float64 { return epsilon }

// Number is the numeric variant. It always carries a float64 and carries an
// exact int64 when built from an integral literal or from exact arithmetic.
// Numbers are immutable.
type Number struct {
	f     float64
	l     int64
	exact bool
}

// Int creates an exact number.
func Int(l int64) Number {
	return Number{f: float64(l), l: l, exact: true}
}

// Float creates an approximate number. Integral floats stay approximate.
func Float(f float64) Number {
	return Number{f: f}
}

// ParseNumber parses a decimal literal. The result is exact when the literal
// has no fractional part and fits an int64.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "/_") {
		return Number{}, errors.Expression(errors.ErrNotNumeric, "invalid number %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !asNumError(err, &numErr) || numErr.Err != strconv.ErrRange {
			return Number{}, errors.Expression(errors.ErrNotNumeric, "invalid number %q", s)
		}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) > math.MaxInt64 {
		return Float(f), nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return Float(f), nil
	}
	return Int(r.Num().Int64()), nil
}

func asNumError(err error, target **strconv.NumError) bool {
	ne, ok := err.(*strconv.NumError)
	if ok {
		*target = ne
	}
	return ok
}

// NumberOf converts a Go numeric to a value. Integral inputs become exact,
// float32 inputs are rounded to six decimal places, nil becomes Null.
func NumberOf(x any) Value {
	switch n := x.(type) {
	case nil:
		return NullValue
	case Number:
		return n
	case int:
		return Int(int64(n))
	case int8:
		return Int(int64(n))
	case int16:
		return Int(int64(n))
	case int32:
		return Int(int64(n))
	case int64:
		return Int(n)
	case uint:
		return NumberOf(uint64(n))
	case uint8:
		return Int(int64(n))
	case uint16:
		return Int(int64(n))
	case uint32:
		return Int(int64(n))
	case uint64:
		if n > math.MaxInt64 {
			return Float(float64(n))
		}
		return Int(int64(n))
	case float32:
		f := float64(n)
		if f == float64(javaLong(f)) {
			return Int(javaLong(f))
		}
		return Float(0.000_001 * math.Round(1_000_000.0*f))
	case float64:
		if n == float64(javaLong(n)) {
			return Int(javaLong(n))
		}
		return Float(n)
	default:
		return NullValue
	}
}

func (Number) Kind() Kind { return KindNumber }
func (Number) isValue()   {}

// IsExact reports whether n carries an exact int64.
func (n Number) IsExact() bool { return n.exact }

// Float64 returns the approximate representation.
func (n Number) Float64() float64 { return n.f }

// Int64 returns the exact representation, or floor(f + epsilon) for an
// approximate number.
func (n Number) Int64() int64 {
	if n.exact {
		return n.l
	}
	return floorLong(n.f + epsilon)
}

// Int32 truncates Int64 to 32 bits.
func (n Number) Int32() int32 { return int32(n.Int64()) }

// IsInteger reports whether n is exact or its float equals its integer form.
func (n Number) IsInteger() bool {
	return n.exact || n.f == float64(n.Int64())
}

// Len returns the number of characters in the integer form.
func (n Number) Len() int { return len(strconv.FormatInt(n.Int64(), 10)) }

// Truthy reports |n| > epsilon.
func (n Number) Truthy() bool { return math.Abs(n.f) > epsilon }

// String renders exact numbers as integers and approximate numbers rounded to
// twelve significant digits.
func (n Number) String() string {
	if n.exact {
		return strconv.FormatInt(n.l, 10)
	}
	return formatApprox(n.f)
}

// Pretty renders integral numbers as integers and others with one decimal
// place followed by "..".
func (n Number) Pretty() string {
	if n.IsInteger() {
		return strconv.FormatInt(n.Int64(), 10)
	}
	return fmt.Sprintf("%.1f..", n.f)
}

// Add returns n + o, exact when both operands are exact.
func (n Number) Add(o Number) Number {
	if n.exact && o.exact {
		return Int(n.l + o.l)
	}
	return Float(n.f + o.f)
}

// Sub returns n - o, exact when both operands are exact.
func (n Number) Sub(o Number) Number {
	if n.exact && o.exact {
		return Int(n.l - o.l)
	}
	return Float(n.f - o.f)
}

// Mul returns n * o, exact when both operands are exact.
func (n Number) Mul(o Number) Number {
	if n.exact && o.exact {
		return Int(n.l * o.l)
	}
	return Float(n.f * o.f)
}

// Div returns n / o. Division is always approximate and never fails.
func (n Number) Div(o Number) Number {
	return Float(n.f / o.f)
}

// Mod returns the floor modulo of n by o.
func (n Number) Mod(o Number) (Number, error) {
	if n.exact && o.exact {
		if o.l == 0 {
			return Number{}, errors.ErrDivisionByZero
		}
		return Int(floorMod(n.l, o.l)), nil
	}
	if o.f == 0 {
		return Number{}, errors.ErrDivisionByZero
	}
	return Float(n.f - math.Floor(n.f/o.f)*o.f), nil
}

// Pow returns n raised to o. The result is always approximate.
func (n Number) Pow(o Number) Number {
	return Float(math.Pow(n.f, o.f))
}

// Neg returns -n, preserving exactness.
func (n Number) Neg() Number {
	if n.exact {
		return Int(-n.l)
	}
	return Float(-n.f)
}

// Compare orders n and o, by int64 when both are exact.
func (n Number) Compare(o Number) int {
	if n.exact && o.exact {
		switch {
		case n.l < o.l:
			return -1
		case n.l > o.l:
			return 1
		default:
			return 0
		}
	}
	return compareFloat(n.f, o.f)
}

// Equal compares by int64 when both are exact. Otherwise two numbers are
// equal when their difference is not truthy, which makes NaN equal to every
// number.
func (n Number) Equal(o Number) bool {
	if n.exact && o.exact {
		return n.l == o.l
	}
	return !n.Sub(o).Truthy()
}

// Native returns an int32 when n is integral with a safe 32-bit margin, an
// int64 when integral but larger, and a float64 otherwise.
func (n Number) Native() any {
	if n.IsInteger() {
		l := n.Int64()
		if l > -(math.MaxInt32-2) && l < math.MaxInt32-2 {
			return int32(l)
		}
		return l
	}
	return n.f
}

// JSON returns an int64 when n is integral and a float64 otherwise.
func (n Number) JSON() any {
	if n.IsInteger() {
		return n.Int64()
	}
	return n.f
}

// hash collapses numbers within epsilon of an integer onto that integer's hash.
func (n Number) hash() uint64 {
	if n.exact || math.Abs(math.Floor(n.f+0.5)-n.f) < epsilon {
		return mix64(uint64(n.Int64()))
	}
	return mix64(math.Float64bits(n.f) ^ floatSalt)
}

// floorLong floors v with the saturating conversion of a 64-bit JVM long cast.
func floorLong(v float64) int64 {
	l := javaLong(v)
	if l != math.MinInt64 && v < float64(l) {
		return l - 1
	}
	return l
}

// javaLong truncates toward zero, saturating at the int64 bounds; NaN is 0.
func javaLong(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(v)
	}
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m^b) < 0 {
		m += b
	}
	return m
}

// compareFloat orders NaN above everything and -0 below +0.
func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	aBits, bBits := int64(math.Float64bits(a)), int64(math.Float64bits(b))
	if math.IsNaN(a) {
		aBits = 0x7ff8000000000000
	}
	if math.IsNaN(b) {
		bBits = 0x7ff8000000000000
	}
	switch {
	case aBits < bBits:
		return -1
	case aBits > bBits:
		return 1
	default:
		return 0
	}
}
