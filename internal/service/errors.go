package service

import "errors"

// ErrNotFound is returned when a requested entity ID has no matching row.
// Handlers surface it as a 404; it is never resolved to an empty entity.
var ErrNotFound = errors.New("resource not found")
