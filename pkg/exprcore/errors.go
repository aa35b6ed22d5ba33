package exprcore

import (
	"errors"
	"fmt"
)

// ErrNilContext indicates a nil context.Context was passed.
var ErrNilContext = errors.New("context cannot be nil")

// EvalError wraps a failure with the evaluation it happened in.
type EvalError struct {
	// EvalID identifies the evaluation.
	EvalID string
	// Op is "evaluate", "call <name>", "load data" or "save data".
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("eval %s: %s: %v", e.EvalID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised while forcing a thunk.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("evaluation panicked: %v", e.Value)
}
