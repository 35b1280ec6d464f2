package memory

import (
	"context"
	"strings"

	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory/backend"
)

func (mb *MemoryBackend) PutObject(ctx context.Context, obj *data.Object) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.objects.Set(obj.Path, obj.Clone())
	return nil
}

func (mb *MemoryBackend) ReadObject(ctx context.Context, path string) (*data.Object, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	obj, exists := mb.objects.Get(path)
	if !exists {
		return nil, data.ErrNotExist
	}

	return obj.Clone(), nil
}

func (mb *MemoryBackend) ListObjects(ctx context.Context, parent string) ([]*data.Object, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	prefix := backend.ChildPrefix(parent)
	children := make([]*data.Object, 0)

	mb.objects.Ascend(prefix, func(key string, obj *data.Object) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}
		if backend.IsDirectChild(key, prefix) {
			children = append(children, obj.Clone())
		}
		return true
	})

	return children, nil
}

func (mb *MemoryBackend) DeleteObject(ctx context.Context, path string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if _, deleted := mb.objects.Delete(path); !deleted {
		return data.ErrNotExist
	}

	return nil
}
