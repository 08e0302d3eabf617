package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C) or the context ended.
	ErrAborted = errors.New("prompt: aborted")
	// ErrRequired is returned by the required-field validator on empty input.
	ErrRequired = errors.New("prompt: value is required")
	// ErrNilDriver is returned when Collect has nothing to ask with.
	ErrNilDriver = errors.New("prompt: driver is nil")
)
