package repositories

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates the attempted write would violate a uniqueness constraint.
	ErrConflict = errors.New("record conflict")
	// ErrInvalidEdge indicates a follow edge that the graph refuses to hold,
	// such as a self-follow.
	ErrInvalidEdge = errors.New("invalid follow edge")
)
