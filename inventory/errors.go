package inventory

import "errors"

var (
	// ErrUnreachable wraps any backend failure observed while resolving.
	ErrUnreachable = errors.New("inventory unreachable")
	// ErrMalformedPath is returned for empty paths and invalid glob patterns.
	ErrMalformedPath = errors.New("malformed path")
	// ErrAmbiguousPath is returned when a path must name exactly one object.
	ErrAmbiguousPath = errors.New("path matches more than one object")
	// ErrNotContainer is returned when an object cannot hold children.
	ErrNotContainer = errors.New("object cannot contain children")
	// ErrUnknownBackend is returned for an address without a known scheme.
	ErrUnknownBackend = errors.New("unknown backend protocol")
	// ErrMalformedAddress is returned for an unparsable backend address.
	ErrMalformedAddress = errors.New("malformed backend address")
)
