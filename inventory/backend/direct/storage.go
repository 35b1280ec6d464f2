package direct

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mwantia/vsh/data"
)

func (db *DirectBackend) PutObject(ctx context.Context, obj *data.Object) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	content, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}

	dir := db.resolvePath(obj.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Write through a temporary file so readers never see partial documents
	tmp := filepath.Join(dir, objectFile+".tmp")
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return err
	}

	return os.Rename(tmp, filepath.Join(dir, objectFile))
}

func (db *DirectBackend) ReadObject(ctx context.Context, path string) (*data.Object, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.readObject(db.resolvePath(path))
}

func (db *DirectBackend) ListObjects(ctx context.Context, parent string) ([]*data.Object, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	entries, err := os.ReadDir(db.resolvePath(parent))
	if errors.Is(err, fs.ErrNotExist) {
		return []*data.Object{}, nil
	}
	if err != nil {
		return nil, err
	}

	children := make([]*data.Object, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		obj, err := db.readObject(filepath.Join(db.resolvePath(parent), entry.Name()))
		if errors.Is(err, data.ErrNotExist) {
			continue
		}
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

// DeleteObject removes the document of path. The directory itself is only
// removed once no child documents remain below it.
func (db *DirectBackend) DeleteObject(ctx context.Context, path string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	dir := db.resolvePath(path)
	if err := os.Remove(filepath.Join(dir, objectFile)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data.ErrNotExist
		}
		return err
	}

	// Only succeeds once no children remain below
	_ = os.Remove(dir)
	return nil
}

func (db *DirectBackend) readObject(dir string) (*data.Object, error) {
	content, err := os.ReadFile(filepath.Join(dir, objectFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	var obj data.Object
	if err := json.Unmarshal(content, &obj); err != nil {
		return nil, err
	}

	return &obj, nil
}
