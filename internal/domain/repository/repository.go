package repository

import "errors"

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
