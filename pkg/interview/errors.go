package interview

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("interview: aborted")
	// ErrNoTemplate is returned when the session carries no template to walk.
	ErrNoTemplate = errors.New("interview: session has no template")
)
