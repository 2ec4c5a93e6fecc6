package repositories

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional update matched no row
	// (the row changed under us since it was read).
	ErrConflict = errors.New("conflict")
)
