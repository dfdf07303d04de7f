package model

import "errors"

var (
	// ErrNotFound is returned when a catalog entity id has no row.
	ErrNotFound = errors.New("catalog entity not found")

	// ErrInvalidKind is returned for an unknown entity kind string.
	ErrInvalidKind = errors.New("invalid catalog entity kind")
)
