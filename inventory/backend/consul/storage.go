package consul

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory/backend"
)

func (cb *ConsulBackend) PutObject(ctx context.Context, obj *data.Object) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	value, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to encode object: %w", err)
	}

	pair := &api.KVPair{
		Key:   cb.buildKey(obj.Path),
		Value: value,
	}

	_, err = cb.kv.Put(pair, cb.writeOptions(ctx))
	return err
}

func (cb *ConsulBackend) ReadObject(ctx context.Context, path string) (*data.Object, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, _, err := cb.kv.Get(cb.buildKey(path), cb.queryOptions(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, data.ErrNotExist
	}

	return decodeObject(pair)
}

func (cb *ConsulBackend) ListObjects(ctx context.Context, parent string) ([]*data.Object, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	prefix := cb.buildKey(backend.ChildPrefix(parent))

	// List is recursive, only direct children are kept
	pairs, _, err := cb.kv.List(prefix, cb.queryOptions(ctx))
	if err != nil {
		return nil, err
	}

	children := make([]*data.Object, 0)
	for _, pair := range pairs {
		if !backend.IsDirectChild(pair.Key, prefix) {
			continue
		}

		obj, err := decodeObject(pair)
		if err != nil {
			return nil, err
		}
		children = append(children, obj)
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Path < children[j].Path
	})

	return children, nil
}

func (cb *ConsulBackend) DeleteObject(ctx context.Context, path string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	key := cb.buildKey(path)

	pair, _, err := cb.kv.Get(key, cb.queryOptions(ctx))
	if err != nil {
		return err
	}
	if pair == nil {
		return data.ErrNotExist
	}

	_, err = cb.kv.Delete(key, cb.writeOptions(ctx))
	return err
}

func decodeObject(pair *api.KVPair) (*data.Object, error) {
	var obj data.Object
	if err := json.Unmarshal(pair.Value, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode object '%s': %w", pair.Key, err)
	}

	return &obj, nil
}
