package data

import "errors"

// Standard inventory errors that backends should use.
var (
	ErrInvalidPath = errors.New("inventory: invalid path detected")
	ErrNotExist    = errors.New("inventory: object does not exist")
	ErrExist       = errors.New("inventory: object already exists")
	ErrNotEmpty    = errors.New("inventory: object has children")
	ErrInvalid     = errors.New("inventory: invalid argument")
	ErrReadOnly    = errors.New("inventory: backend is read-only")
)

// ErrUnavailable is returned by backends that cannot reach their store.
var ErrUnavailable = errors.New("inventory: backend unavailable")
