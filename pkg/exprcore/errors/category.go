// Package errors provides error categorization for expression evaluation.
//
// Two kinds of failure surface from the operator layer:
//   - Semantic: wrong operand kinds, bad assignment targets, unpack arity mismatches.
//   - Arithmetic: faults raised by numeric operations (only modulo by a zero divisor).
//
// Neither kind is retried or suppressed; both propagate to the evaluation caller.
package errors

import (
	"errors"
	"fmt"
)

// Category represents what kind of failure an error reports.
type Category int

const (
	// CategorySemantic indicates the expression is ill-formed for its operands.
	// Examples: adding a map to a number, assigning to a literal.
	CategorySemantic Category = iota

	// CategoryArithmetic indicates a numeric fault.
	// Examples: modulo by a zero floating divisor.
	CategoryArithmetic

	// CategoryUnknown is reported for errors that did not originate here.
	CategoryUnknown
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySemantic:
		return "semantic"
	case CategoryArithmetic:
		return "arithmetic"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by ExpressionError.
var (
	ErrNotNumeric           = errors.New("operand has to be of a numeric type")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrNotAssignable        = errors.New("expression is not assignable")
	ErrTooManyValues        = errors.New("too many values to unpack")
	ErrTooFewValues         = errors.New("too few values to unpack")
	ErrUnpackNonList        = errors.New("unable to unpack a non-list")
	ErrUnresolvedContainer  = errors.New("failed to resolve left hand side of the += operation")
	ErrUnknownFunction      = errors.New("unknown function")
	ErrArity                = errors.New("wrong number of arguments")
	ErrUnevenLists          = errors.New("lists of uneven sizes")
)

// ErrDivisionByZero is the arithmetic fault raised by modulo.
var ErrDivisionByZero = &ArithmeticError{Op: "%", Message: "division by zero"}

// ExpressionError is a semantic error reported to the evaluation caller.
type ExpressionError struct {
	// Err is the sentinel describing the failure class.
	Err error

	// Detail adds operand-specific context; may be empty.
	Detail string
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Detail)
	}
	return e.Err.Error()
}

// Unwrap returns the sentinel for errors.Is support.
func (e *ExpressionError) Unwrap() error {
	return e.Err
}

// Expression creates a semantic error wrapping sentinel.
func Expression(sentinel error, format string, args ...any) *ExpressionError {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	return &ExpressionError{Err: sentinel, Detail: detail}
}

// ArithmeticError is a numeric fault.
type ArithmeticError struct {
	// Op is the operator that faulted.
	Op string

	// Message describes the fault.
	Message string
}

// Error implements the error interface.
func (e *ArithmeticError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("arithmetic error in %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("arithmetic error: %s", e.Message)
}

// Categorize determines which kind of failure err reports.
func Categorize(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var arithErr *ArithmeticError
	if errors.As(err, &arithErr) {
		return CategoryArithmetic
	}

	var exprErr *ExpressionError
	if errors.As(err, &exprErr) {
		return CategorySemantic
	}

	return CategoryUnknown
}

// IsSemantic reports whether err is a semantic expression error.
func IsSemantic(err error) bool {
	return Categorize(err) == CategorySemantic
}

// IsArithmetic reports whether err is an arithmetic fault.
func IsArithmetic(err error) bool {
	return Categorize(err) == CategoryArithmetic
}
