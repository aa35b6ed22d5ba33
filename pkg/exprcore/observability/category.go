package observability

import (
	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
)

func categoryOf(err error) string {
	return exerrors.Categorize(err).String()
}
