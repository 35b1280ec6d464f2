package memory

import (
	"context"
	"sync"

	"github.com/mwantia/vsh/data"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps the inventory in an ordered in-memory B-tree, so
// children of a path are found with a single ordered scan.
type MemoryBackend struct {
	mu sync.RWMutex

	objects *btree.Map[string, *data.Object]
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		objects: btree.NewMap[string, *data.Object](0),
	}
}

// Returns the identifier name defined for this backend
func (*MemoryBackend) Name() string {
	return "memory"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (mb *MemoryBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (mb *MemoryBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.objects.Clear()
	return nil
}
