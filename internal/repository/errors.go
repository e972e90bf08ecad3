package repository

import "errors"

var (
	// ErrNotFound is returned when a key or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorruptSnapshot is returned when a stored draft cannot be decoded.
	ErrCorruptSnapshot = errors.New("corrupt draft snapshot")
)
