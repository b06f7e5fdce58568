package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is a panic converted into an ordinary error at a public API
// boundary. Dense linear algebra panics deep inside BLAS/LAPACK wrappers on
// shape mismatches; Recover turns those into values the caller can inspect.
type PanicError struct {
	// PanicValue is the value passed to panic().
	PanicValue interface{}

	// StackTrace is the goroutine stack captured at recovery time.
	StackTrace string

	// Operation names the public entry point that recovered the panic.
	Operation string
}

// NewPanicError captures the current stack and wraps the panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap exposes the panic value when it was itself an error, so Is/As see
// through recovered gonum panics (for example mat.ErrShape).
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String renders the error together with the captured stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// Recover converts an in-flight panic into a PanicError assigned to *err.
// Use it with defer on public methods whose internals may panic:
//
//	func (m *RandomFeatureMethod) Fit(...) (err error) {
//	    defer errors.Recover(&err, "RandomFeatureMethod.Fit")
//	    ...
//	}
//
// When the function already carries an error, the panic message wraps it so
// neither is lost.
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = fmt.Errorf("panic in %s: %v (original error: %w)", operation, r, *err)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute runs fn and converts a panic into the returned error.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
