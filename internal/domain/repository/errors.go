package repository

import "errors"

// ErrNotFound is returned by lookups when no matching record exists.
// Implementations map their driver-specific not-found errors to it.
var ErrNotFound = errors.New("record not found")
