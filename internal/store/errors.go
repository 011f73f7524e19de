package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint would be violated,
// e.g. registering a username that already exists.
var ErrConflict = errors.New("conflict")
