// Package errors provides structured error handling for the composition runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCompose indicates a failure inside a content pass.
	KindCompose
	// KindEffect indicates a failure inside an effect or cleanup body.
	KindEffect
	// KindDispose indicates a failure while tearing down a composition.
	KindDispose
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindCompose:
		return "compose"
	case KindEffect:
		return "effect"
	case KindDispose:
		return "dispose"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ComposeError represents a structured error raised by the runtime.
type ComposeError struct {
	// Op is the operation that failed (e.g., "compose.Recompose").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Composition is the identity of the composition involved, if known.
	Composition string
	// Recovered is the panic value when the error wraps a recovered panic.
	Recovered any
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ComposeError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("%s [%s]: panic: %v", e.Op, e.Kind, e.Recovered)
	}
	if e.Composition != "" {
		return fmt.Sprintf("%s [%s] composition=%s: %v", e.Op, e.Kind, e.Composition, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "compose.commit").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ComposeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
