package repository

import "errors"

// Sentinel errors shared by all repository implementations.
// Anything else returned from a repository is treated as an
// infrastructure fault by the dispatcher.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)
