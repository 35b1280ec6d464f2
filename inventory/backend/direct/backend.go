package direct

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mwantia/vsh/data"
)

// objectFile is the name of the JSON document describing the object whose
// path is the enclosing directory.
const objectFile = ".object.json"

// DirectBackend mirrors the inventory tree as directories on the local
// filesystem, one JSON document per object.
type DirectBackend struct {
	mu   sync.RWMutex
	path string
}

func NewDirectBackend(path string) (*DirectBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("direct backend requires a directory: %w", data.ErrInvalid)
	}

	return &DirectBackend{
		path: filepath.Clean(path),
	}, nil
}

// Returns the identifier name defined for this backend
func (*DirectBackend) Name() string {
	return "direct"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (db *DirectBackend) Open(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := os.MkdirAll(db.path, 0755); err != nil {
		return fmt.Errorf("%w: %w", data.ErrUnavailable, err)
	}

	// Ensure the root is a directory
	info, err := os.Stat(db.path)
	if err != nil {
		return fmt.Errorf("%w: %w", data.ErrUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("'%s' is not a directory: %w", db.path, data.ErrUnavailable)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (db *DirectBackend) Close(ctx context.Context) error {
	// The underlying filesystem persists independently
	return nil
}

// resolvePath joins the backend path with the object path.
func (db *DirectBackend) resolvePath(path string) string {
	return filepath.Join(db.path, filepath.FromSlash(path))
}
