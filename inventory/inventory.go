package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory/backend"
	"github.com/mwantia/vsh/log"
)

// Inventory is the naming service of the shell. It keeps a tree of objects
// in a storage backend and resolves slash separated paths, including glob
// patterns, into the objects they name.
//
// The root is virtual: it always exists, is never stored, and has the
// empty path.
type Inventory struct {
	mu      sync.RWMutex
	backend backend.Backend
	log     *log.Logger
	root    *data.Object
}

type Option func(*Inventory)

// WithLogger sets the logger used for lookups and mutations.
func WithLogger(logger *log.Logger) Option {
	return func(i *Inventory) {
		i.log = logger.Named("inventory")
	}
}

func NewInventory(b backend.Backend, opts ...Option) *Inventory {
	inv := &Inventory{
		backend: b,
		log:     log.Discard(),
		root:    data.NewRootObject(),
	}

	for _, opt := range opts {
		opt(inv)
	}

	return inv
}

// Open opens the underlying backend.
func (i *Inventory) Open(ctx context.Context) error {
	if err := i.backend.Open(ctx); err != nil {
		return fmt.Errorf("failed to open backend '%s': %w", i.backend.Name(), err)
	}

	i.log.Debug("Opened backend '%s'", i.backend.Name())
	return nil
}

// Close closes the underlying backend.
func (i *Inventory) Close(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.backend.Close(ctx)
}

// Root returns a copy of the root object.
func (i *Inventory) Root() *data.Object {
	return i.root.Clone()
}

// Backend returns the name of the storage backend in use.
func (i *Inventory) Backend() string {
	return i.backend.Name()
}

func (i *Inventory) read(ctx context.Context, p string) (*data.Object, error) {
	if p == "" {
		return i.root.Clone(), nil
	}

	return i.backend.ReadObject(ctx, p)
}
