package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mwantia/vsh/data"
)

// Get returns the object at the exact path p. Glob characters are not
// expanded.
func (i *Inventory) Get(ctx context.Context, p string) (*data.Object, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.read(ctx, data.CleanPath(p))
}

// List returns the direct children of the object at p, sorted by path.
func (i *Inventory) List(ctx context.Context, p string) ([]*data.Object, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	p = data.CleanPath(p)
	if _, err := i.read(ctx, p); err != nil {
		return nil, err
	}

	return i.backend.ListObjects(ctx, p)
}

// Create adds a new object named name of the given kind below parent.
func (i *Inventory) Create(ctx context.Context, parent *data.Object, name string, kind data.Kind) (*data.Object, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	current, err := i.read(ctx, parent.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parent '%s': %w", parent, err)
	}
	if !current.Kind.IsContainer() {
		return nil, fmt.Errorf("%w: '%s' is a %s", ErrNotContainer, current, current.Kind)
	}

	obj := data.NewObject(current.Path, name, kind)
	if _, err := i.backend.ReadObject(ctx, obj.Path); err == nil {
		return nil, fmt.Errorf("'%s': %w", obj, data.ErrExist)
	} else if !errors.Is(err, data.ErrNotExist) {
		return nil, err
	}

	if err := i.backend.PutObject(ctx, obj); err != nil {
		return nil, err
	}

	i.log.Debug("Created %s '%s'", kind, obj)
	return obj, nil
}

// Update stores changed attributes of an existing object.
func (i *Inventory) Update(ctx context.Context, obj *data.Object) error {
	if obj.IsRoot() {
		return fmt.Errorf("cannot update the root: %w", data.ErrInvalid)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	current, err := i.backend.ReadObject(ctx, obj.Path)
	if err != nil {
		return err
	}

	updated := obj.Clone()
	updated.ID = current.ID
	updated.CreateTime = current.CreateTime
	updated.ModifyTime = time.Now()

	if err := i.backend.PutObject(ctx, updated); err != nil {
		return err
	}

	i.log.Debug("Updated '%s'", obj)
	return nil
}

// Delete removes the object at p. Objects with children are only removed
// when recursive is set, together with their whole subtree.
func (i *Inventory) Delete(ctx context.Context, p string, recursive bool) error {
	p = data.CleanPath(p)
	if p == "" {
		return fmt.Errorf("cannot delete the root: %w", data.ErrInvalid)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if _, err := i.backend.ReadObject(ctx, p); err != nil {
		return err
	}

	children, err := i.backend.ListObjects(ctx, p)
	if err != nil {
		return err
	}
	if len(children) > 0 && !recursive {
		return fmt.Errorf("'/%s': %w", p, data.ErrNotEmpty)
	}

	if err := i.deleteTree(ctx, p); err != nil {
		return err
	}

	i.log.Debug("Deleted '/%s'", p)
	return nil
}

func (i *Inventory) deleteTree(ctx context.Context, p string) error {
	children, err := i.backend.ListObjects(ctx, p)
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := i.deleteTree(ctx, child.Path); err != nil {
			return err
		}
	}

	return i.backend.DeleteObject(ctx, p)
}

// Move relocates the object at p below target under the new name. The
// whole subtree moves with it and keeps its identifiers.
func (i *Inventory) Move(ctx context.Context, p string, target *data.Object, name string) (*data.Object, error) {
	p = data.CleanPath(p)
	if p == "" {
		return nil, fmt.Errorf("cannot move the root: %w", data.ErrInvalid)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	source, err := i.backend.ReadObject(ctx, p)
	if err != nil {
		return nil, err
	}

	parent, err := i.read(ctx, target.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read target '%s': %w", target, err)
	}
	if !parent.Kind.IsContainer() {
		return nil, fmt.Errorf("%w: '%s' is a %s", ErrNotContainer, parent, parent.Kind)
	}

	destination := data.JoinPath(parent.Path, name)
	if destination == p {
		return source, nil
	}
	if strings.HasPrefix(destination+"/", p+"/") {
		return nil, fmt.Errorf("cannot move '/%s' into itself: %w", p, data.ErrInvalid)
	}
	if _, err := i.backend.ReadObject(ctx, destination); err == nil {
		return nil, fmt.Errorf("'/%s': %w", destination, data.ErrExist)
	} else if !errors.Is(err, data.ErrNotExist) {
		return nil, err
	}

	moved, err := i.copyTree(ctx, source, destination, name)
	if err != nil {
		return nil, err
	}
	if err := i.deleteTree(ctx, p); err != nil {
		return nil, err
	}

	i.log.Debug("Moved '/%s' to '%s'", p, moved)
	return moved, nil
}

func (i *Inventory) copyTree(ctx context.Context, source *data.Object, destination, name string) (*data.Object, error) {
	children, err := i.backend.ListObjects(ctx, source.Path)
	if err != nil {
		return nil, err
	}

	moved := source.Clone()
	moved.Path = destination
	moved.Name = name
	moved.ModifyTime = time.Now()

	if err := i.backend.PutObject(ctx, moved); err != nil {
		return nil, err
	}

	for _, child := range children {
		if _, err := i.copyTree(ctx, child, data.JoinPath(destination, child.Name), child.Name); err != nil {
			return nil, err
		}
	}

	return moved, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return fmt.Errorf("%w: '%s'", data.ErrInvalidPath, name)
	}
	if data.HasGlob(name) {
		return fmt.Errorf("%w: '%s' contains pattern characters", data.ErrInvalidPath, name)
	}

	return nil
}
