package backend

import (
	"context"

	"github.com/mwantia/vsh/data"
)

// ReadOnlyBackend wraps any Backend to make it read-only.
// All read operations are passed through to the underlying backend.
// All write operations return data.ErrReadOnly.
type ReadOnlyBackend struct {
	backend Backend
}

// NewReadOnly creates a new read-only wrapper around the given backend.
func NewReadOnly(backend Backend) *ReadOnlyBackend {
	return &ReadOnlyBackend{
		backend: backend,
	}
}

func (rob *ReadOnlyBackend) Name() string {
	return rob.backend.Name()
}

func (rob *ReadOnlyBackend) Open(ctx context.Context) error {
	return rob.backend.Open(ctx)
}

func (rob *ReadOnlyBackend) Close(ctx context.Context) error {
	return rob.backend.Close(ctx)
}

func (rob *ReadOnlyBackend) PutObject(ctx context.Context, obj *data.Object) error {
	return data.ErrReadOnly
}

func (rob *ReadOnlyBackend) ReadObject(ctx context.Context, path string) (*data.Object, error) {
	return rob.backend.ReadObject(ctx, path)
}

func (rob *ReadOnlyBackend) ListObjects(ctx context.Context, parent string) ([]*data.Object, error) {
	return rob.backend.ListObjects(ctx, parent)
}

func (rob *ReadOnlyBackend) DeleteObject(ctx context.Context, path string) error {
	return data.ErrReadOnly
}
