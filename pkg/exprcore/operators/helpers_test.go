package operators_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
	"github.com/randalmurphal/exprcore/pkg/exprcore/scope"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

var (
	lit  = scope.Lit
	num  = func(i int64) operators.Thunk { return scope.Lit(value.Int(i)) }
	flt  = func(f float64) operators.Thunk { return scope.Lit(value.Float(f)) }
	str  = func(s string) operators.Thunk { return scope.Lit(value.String(s)) }
	list = scope.List
	v    = scope.Var
)

func lits(vals ...value.Value) []operators.Thunk {
	out := make([]operators.Thunk, len(vals))
	for i, x := range vals {
		out[i] = scope.Lit(x)
	}
	return out
}

// mustEval evaluates node in ContextNone.
func mustEval(t *testing.T, s *scope.Scope, node operators.Thunk) value.Value {
	t.Helper()
	got, err := node.Eval(s, operators.ContextNone)
	require.NoError(t, err)
	return got
}

func mustGet(t *testing.T, s *scope.Scope, name string) value.Value {
	t.Helper()
	got, err := s.Get(name)
	require.NoError(t, err)
	return value.Unwrap(got)
}

// tracked returns a thunk that records whether it was forced and in which
// context.
func tracked(result value.Value) (operators.Thunk, *[]operators.ContextType) {
	var seen []operators.ContextType
	return func(_ operators.Scope, t operators.ContextType) (value.Value, error) {
		seen = append(seen, t)
		return result, nil
	}, &seen
}
