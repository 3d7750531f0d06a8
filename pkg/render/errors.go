package render

import "fmt"

// HeaderLevelError is returned when a heading level outside [1,6] is used
// to construct renderer options.
type HeaderLevelError struct {
	Level int
}

// Error implements the error interface.
func (e *HeaderLevelError) Error() string {
	return fmt.Sprintf("invalid header level '%d'", e.Level)
}

// WriteError reports a fault in the underlying output sink. Generation stops
// at the first fault; a destination that received partial output must be
// discarded or overwritten by the caller.
type WriteError struct {
	Cause       error  // the underlying I/O or formatting error
	Description string // optional free-text context ("" = none)
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("internal output error: %v, description: %s", e.Cause, e.Description)
	}
	return fmt.Sprintf("internal output error: %v", e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *WriteError) Unwrap() error {
	return e.Cause
}
