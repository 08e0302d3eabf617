package config

import "errors"

var (
	// ErrMalformedInput reports input that cannot become a node or list entry,
	// such as a numerically keyed map.
	ErrMalformedInput = errors.New("config: malformed input")
	// ErrNotFound reports a name that does not resolve to a node in the tree.
	ErrNotFound = errors.New("config: element not found")
	// ErrInvalidPosition reports a position that does not address an entry.
	ErrInvalidPosition = errors.New("config: invalid position")
)
