package render

import (
	charmlog "github.com/charmbracelet/log"
)

// HeaderLevel is a checked markdown heading level in [1,6].
// The zero value is invalid - construct levels with [NewHeaderLevel].
type HeaderLevel int

// NewHeaderLevel validates level and returns it as a HeaderLevel.
// Returns *HeaderLevelError when level is outside [1,6].
func NewHeaderLevel(level int) (HeaderLevel, error) {
	if level < 1 || level > 6 {
		return 0, &HeaderLevelError{Level: level}
	}
	return HeaderLevel(level), nil
}

// Next returns the heading level one unit deeper.
// Returns *HeaderLevelError when the result would exceed 6.
func (h HeaderLevel) Next() (HeaderLevel, error) {
	return NewHeaderLevel(int(h) + 1)
}

// Options configures a [Renderer]. Both knobs are fixed for a whole run.
type Options struct {
	// Level is the heading level used for per-tag headers.
	Level HeaderLevel

	// CRLF selects carriage-return-plus-line-feed line endings instead of
	// plain line feeds.
	CRLF bool

	// Logger receives diagnostics for conditions that indicate a builder
	// bug (a parent identifier that fails to resolve). When nil, the
	// package-level default logger is used.
	Logger *charmlog.Logger
}
