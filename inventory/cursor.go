package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/vsh/data"
)

// Cursor binds a current directory to an inventory. Relative paths given
// to Resolve start at that directory.
type Cursor struct {
	mu  sync.RWMutex
	inv *Inventory
	cwd string
}

func NewCursor(inv *Inventory) *Cursor {
	return &Cursor{
		inv: inv,
	}
}

// Inventory returns the inventory the cursor moves in.
func (c *Cursor) Inventory() *Inventory {
	return c.inv
}

// Cwd returns the path of the current directory, without a leading slash.
func (c *Cursor) Cwd() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cwd
}

// Resolve resolves p relative to the current directory.
func (c *Cursor) Resolve(ctx context.Context, p string, kinds []data.Kind) ([]*data.Object, error) {
	return c.inv.ResolveFrom(ctx, c.Cwd(), p, kinds)
}

// Chdir changes the current directory to the single container named by p.
func (c *Cursor) Chdir(ctx context.Context, p string) (*data.Object, error) {
	objects, err := c.Resolve(ctx, p, nil)
	if err != nil {
		return nil, err
	}

	switch len(objects) {
	case 0:
		return nil, fmt.Errorf("'%s': %w", p, data.ErrNotExist)
	case 1:
	default:
		return nil, fmt.Errorf("'%s': %w", p, ErrAmbiguousPath)
	}

	obj := objects[0]
	if !obj.Kind.IsContainer() {
		return nil, fmt.Errorf("%w: '%s' is a %s", ErrNotContainer, obj, obj.Kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cwd = obj.Path
	return obj, nil
}
