package operators

import (
	"slices"

	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

func registerUnpack(r *Registry) error {
	return r.AddLazyUnaryOperator("...", PrecedenceUnary, false, true, spreadContext, spread)
}

func spreadContext(caller ContextType) ContextType {
	if caller == ContextLocalization {
		return ContextNone
	}
	return caller
}

// spread marks a vararg parameter when evaluated as part of a function
// signature, and otherwise exposes the elements of a sequence to the
// enclosing call.
func spread(s Scope, t ContextType, operand Thunk) (Thunk, error) {
	if t == ContextLocalization {
		v, err := operand.Eval(s, ContextNone)
		if err != nil {
			return nil, err
		}
		return Const(value.Annotation{Type: value.AnnotationVararg, Inner: v}), nil
	}

	v, err := operand.Eval(s, t)
	if err != nil {
		return nil, err
	}
	items, ok := value.Elements(v)
	if !ok {
		return nil, exerrors.Expression(exerrors.ErrUnpackNonList, "got %s", value.Unwrap(v).Kind())
	}
	return Const(value.NewUnpacked(slices.Clone(items))), nil
}
