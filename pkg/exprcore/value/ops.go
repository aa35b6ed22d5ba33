package value

import (
	"encoding/binary"
	"math/bits"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/randalmurphal/exprcore/pkg/exprcore/errors"
)

// AsNumber returns the numeric form of v. Bools are exact 0 or 1 and Null is
// exact 0; every other kind is not numeric.
func AsNumber(v Value) (Number, bool) {
	switch x := Unwrap(v).(type) {
	case Number:
		return x, true
	case Bool:
		return x.Number(), true
	case Null:
		return Int(0), true
	default:
		return Number{}, false
	}
}

// RequireNumber is AsNumber reporting a semantic error for non-numeric input.
func RequireNumber(v Value) (Number, error) {
	n, ok := AsNumber(v)
	if !ok {
		return Number{}, errors.Expression(errors.ErrNotNumeric, "got %s", describe(v))
	}
	return n, nil
}

type arith int

const (
	opAdd arith = iota
	opSub
	opMul
	opDiv
)

func (o arith) String() string {
	return [...]string{"+", "-", "*", "/"}[o]
}

// Add implements '+'.
func Add(a, b Value) (Value, error) { return combine(opAdd, a, b) }

// Subtract implements '-'.
func Subtract(a, b Value) (Value, error) { return combine(opSub, a, b) }

// Multiply implements '*'.
func Multiply(a, b Value) (Value, error) { return combine(opMul, a, b) }

// Divide implements '/'. Numeric division never fails.
func Divide(a, b Value) (Value, error) { return combine(opDiv, a, b) }

func combine(op arith, a, b Value) (Value, error) {
	a, b = Unwrap(a), Unwrap(b)

	la, aList := a.(*List)
	lb, bList := b.(*List)
	switch {
	case aList && bList:
		if la.Len() != lb.Len() {
			return nil, errors.Expression(errors.ErrUnevenLists, "cannot apply %s to lists of sizes %d and %d", op, la.Len(), lb.Len())
		}
		out := make([]Value, la.Len())
		for i := range la.items {
			r, err := combine(op, la.items[i], lb.items[i])
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return ListOf(out), nil
	case aList:
		return broadcast(la.items, func(x Value) (Value, error) { return combine(op, x, b) })
	case bList:
		return broadcast(lb.items, func(x Value) (Value, error) { return combine(op, a, x) })
	}

	na, aNum := AsNumber(a)
	nb, bNum := AsNumber(b)
	if aNum && bNum {
		switch op {
		case opAdd:
			return na.Add(nb), nil
		case opSub:
			return na.Sub(nb), nil
		case opMul:
			return na.Mul(nb), nil
		default:
			return na.Div(nb), nil
		}
	}

	_, aStr := a.(String)
	_, bStr := b.(String)
	switch {
	case op == opAdd && (aStr || bStr):
		return String(a.String() + b.String()), nil
	case op == opSub && aStr:
		return String(strings.Replace(a.String(), b.String(), "", 1)), nil
	case op == opMul && aStr && bNum:
		return repeat(a.String(), nb)
	case op == opMul && bStr && aNum:
		return repeat(b.String(), na)
	}
	return nil, errors.Expression(errors.ErrUnsupportedOperation, "%s %s %s", a.Kind(), op, b.Kind())
}

func broadcast(items []Value, f func(Value) (Value, error)) (Value, error) {
	out := make([]Value, len(items))
	for i, x := range items {
		r, err := f(x)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return ListOf(out), nil
}

// maxRepeatLen bounds the length of a string produced by repetition.
const maxRepeatLen = 1 << 28

func repeat(s string, n Number) (Value, error) {
	count := n.Int64()
	if count <= 0 || s == "" {
		return String(""), nil
	}
	if count > maxRepeatLen/int64(len(s)) {
		return nil, errors.Expression(errors.ErrUnsupportedOperation, "repeating a string of length %d %s times exceeds %d characters", len(s), n, maxRepeatLen)
	}
	return String(strings.Repeat(s, int(count))), nil
}

// Mod implements '%' over numeric operands.
func Mod(a, b Value) (Value, error) {
	na, err := RequireNumber(a)
	if err != nil {
		return nil, err
	}
	nb, err := RequireNumber(b)
	if err != nil {
		return nil, err
	}
	return na.Mod(nb)
}

// Pow implements '^' over numeric operands.
func Pow(a, b Value) (Value, error) {
	na, err := RequireNumber(a)
	if err != nil {
		return nil, err
	}
	nb, err := RequireNumber(b)
	if err != nil {
		return nil, err
	}
	return na.Pow(nb), nil
}

// Negate implements unary '-'.
func Negate(v Value) (Value, error) {
	n, err := RequireNumber(v)
	if err != nil {
		return nil, err
	}
	return n.Neg(), nil
}

// Compare returns a negative, zero or positive result ordering a before, with
// or after b. Null sorts below everything else. Numbers compare numerically,
// lists by size then element-wise, and any other pairing by string form.
func Compare(a, b Value) int {
	a, b = Unwrap(a), Unwrap(b)
	_, aNull := a.(Null)
	_, bNull := b.(Null)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return -1
	case bNull:
		return 1
	}

	if na, ok := numeric(a); ok {
		if nb, ok := numeric(b); ok {
			return na.Compare(nb)
		}
	}

	switch x := a.(type) {
	case *List:
		if y, ok := b.(*List); ok {
			if c := compareInt(x.Len(), y.Len()); c != 0 {
				return c
			}
			for i := range x.items {
				if c := Compare(x.items[i], y.items[i]); c != 0 {
					return c
				}
			}
			return 0
		}
	case *Map:
		if y, ok := b.(*Map); ok {
			if c := compareInt(x.Len(), y.Len()); c != 0 {
				return c
			}
		}
	}
	return strings.Compare(a.String(), b.String())
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// numeric is AsNumber without the Null coercion.
func numeric(v Value) (Number, bool) {
	switch x := v.(type) {
	case Number:
		return x, true
	case Bool:
		return x.Number(), true
	default:
		return Number{}, false
	}
}

// Equal reports value equality. Numbers and bools compare numerically with
// the epsilon tolerance; lists and maps compare structurally; values of
// unrelated kinds are never equal.
func Equal(a, b Value) bool {
	a, b = Unwrap(a), Unwrap(b)
	if na, ok := numeric(a); ok {
		nb, ok := numeric(b)
		return ok && na.Equal(nb)
	}

	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case String:
		y, ok := b.(String)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		return ok && (x == y || equalItems(x.items, y.items))
	case ListConstructor:
		y, ok := b.(ListConstructor)
		return ok && equalItems(x.items, y.items)
	case Unpacked:
		y, ok := b.(Unpacked)
		return ok && equalItems(x.items, y.items)
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		if x == y {
			return true
		}
		for i, k := range x.keys {
			v, found := y.Lookup(k)
			if !found || !Equal(x.vals[i], v) {
				return false
			}
		}
		return true
	case Annotation:
		y, ok := b.(Annotation)
		return ok && x.Type == y.Type && Equal(x.Inner, y.Inner)
	default:
		return false
	}
}

func equalItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

const (
	nullHash      uint64 = 0x6e756c6c
	floatSalt     uint64 = 0x9e3779b97f4a7c15
	listSalt      uint64 = 0x6c697374
	mapSalt       uint64 = 0x6d6170
	unpackSalt    uint64 = 0x2e2e2e
	annotateSalt  uint64 = 0x616e6e6f
	containerSalt uint64 = 0x6c636f6e
)

// Hash returns a hash consistent with Equal. Numbers within epsilon of an
// integer hash as that integer; approximate non-integral numbers hash by their
// bits, so two of them within epsilon of each other may still hash apart.
func Hash(v Value) uint64 {
	switch x := Unwrap(v).(type) {
	case Null:
		return nullHash
	case Number:
		return x.hash()
	case Bool:
		return x.Number().hash()
	case String:
		return xxhash.Sum64String(string(x))
	case *List:
		return hashItems(listSalt, x.items)
	case ListConstructor:
		return hashItems(listSalt, x.items)
	case Unpacked:
		return hashItems(unpackSalt, x.items)
	case *Map:
		// order independent, maps compare without regard to insertion order
		h := mapSalt
		for i, k := range x.keys {
			h += mix64(Hash(k) ^ bits.RotateLeft64(Hash(x.vals[i]), 17))
		}
		return h
	case Annotation:
		return mix64(annotateSalt ^ uint64(x.Type) ^ Hash(x.Inner))
	default:
		return containerSalt
	}
}

func hashItems(salt uint64, items []Value) uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], salt)
	_, _ = d.Write(buf[:])
	for _, it := range items {
		binary.LittleEndian.PutUint64(buf[:], Hash(it))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// In implements '~'. For a list it returns the index of the first element
// equal to b; for a map it returns b when present as a key; otherwise the
// string form of a is matched against the regular expression b, returning the
// match, its single group, or a list of groups. A miss yields Null.
func In(a, b Value) (Value, error) {
	a, b = Unwrap(a), Unwrap(b)
	switch x := a.(type) {
	case Null:
		return NullValue, nil
	case *List:
		for i, it := range x.items {
			if Equal(it, b) {
				return Int(int64(i)), nil
			}
		}
		return NullValue, nil
	case *Map:
		if x.Has(b) {
			return b, nil
		}
		return NullValue, nil
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, errors.Expression(errors.ErrUnsupportedOperation, "incorrect matching pattern %q: %v", b.String(), err)
	}
	m := re.FindStringSubmatch(a.String())
	switch {
	case m == nil:
		return NullValue, nil
	case len(m) == 1:
		return String(m[0]), nil
	case len(m) == 2:
		return String(m[1]), nil
	default:
		groups := make([]Value, len(m)-1)
		for i, g := range m[1:] {
			groups[i] = String(g)
		}
		return ListOf(groups), nil
	}
}
