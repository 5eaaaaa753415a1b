package main

import "fmt"

const (
	exitCodeCanceled = 130
	// exitCodeUsage is returned for invalid flags or arguments.
	exitCodeUsage = 2
)

type exitError struct {
	code   int
	err    error
	silent bool
}

func usageError(format string, args ...any) error {
	return &exitError{code: exitCodeUsage, err: fmt.Errorf(format, args...)}
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// cause returns the wrapped error, or fallback when there is none.
func (e *exitError) cause(fallback error) error {
	if e != nil && e.err != nil {
		return e.err
	}
	return fallback
}
