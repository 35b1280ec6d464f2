package backend

import (
	"context"

	"github.com/mwantia/vsh/data"
)

// Backend stores inventory objects keyed by their path. Implementations do
// not enforce tree structure; the inventory keeps parents and children
// consistent and treats the root as virtual.
type Backend interface {
	// Name returns the identifier name defined for this backend
	Name() string
	// Open is part of the lifecycle behaviour and gets called before first use.
	Open(ctx context.Context) error
	// Close is part of the lifecycle behaviour and releases every resource held.
	Close(ctx context.Context) error

	// PutObject creates or replaces the object stored at obj.Path.
	PutObject(ctx context.Context, obj *data.Object) error
	// ReadObject returns the object at path or data.ErrNotExist.
	ReadObject(ctx context.Context, path string) (*data.Object, error)
	// ListObjects returns the direct children of parent sorted by name.
	ListObjects(ctx context.Context, parent string) ([]*data.Object, error)
	// DeleteObject removes the object at path or returns data.ErrNotExist.
	DeleteObject(ctx context.Context, path string) error
}

// ChildPrefix returns the key prefix shared by all children of parent.
func ChildPrefix(parent string) string {
	if parent == "" {
		return ""
	}

	return parent + "/"
}

// IsDirectChild reports whether key names a direct child below prefix.
func IsDirectChild(key, prefix string) bool {
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return false
	}

	for _, c := range key[len(prefix):] {
		if c == '/' {
			return false
		}
	}

	return true
}
