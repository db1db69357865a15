package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a ComposeError to stderr.
func (h *LogHandler) HandleError(err *ComposeError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[compose error] %s [%s]", err.Op, err.Kind)
		if err.Composition != "" {
			fmt.Fprintf(os.Stderr, " composition=%s", err.Composition)
		}
		if err.Recovered != nil {
			fmt.Fprintf(os.Stderr, ": panic: %v\n", err.Recovered)
		} else {
			fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
		}
		if err.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(os.Stderr, "[compose error] %s\n", err.Error())
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[compose panic] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}
