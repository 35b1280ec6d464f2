package inventory

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/mwantia/vsh/data"
)

// Resolve returns every object of the given kinds named by p, relative to
// the root. See ResolveFrom.
func (i *Inventory) Resolve(ctx context.Context, p string, kinds []data.Kind) ([]*data.Object, error) {
	return i.ResolveFrom(ctx, "", p, kinds)
}

// ResolveFrom returns every object of the given kinds named by p. Relative
// paths start at base. Each path component may be a glob pattern as
// understood by path.Match. The result is de-duplicated and sorted by path;
// an empty result is not an error.
func (i *Inventory) ResolveFrom(ctx context.Context, base, p string, kinds []data.Kind) ([]*data.Object, error) {
	if strings.TrimSpace(p) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrMalformedPath)
	}

	full := data.JoinPath(base, p)
	components := data.Components(full)

	for _, component := range components {
		if _, err := path.Match(component, ""); err != nil {
			return nil, fmt.Errorf("%w: '%s': %v", ErrMalformedPath, p, err)
		}
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	current := []*data.Object{i.root.Clone()}
	for _, component := range components {
		next, err := i.step(ctx, current, component)
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			current = nil
			break
		}
		current = next
	}

	result := filter(current, kinds)
	i.log.Debug("Resolved '%s' from '/%s' into %d object(s)", p, base, len(result))

	return result, nil
}

// step expands one path component below every object in current.
func (i *Inventory) step(ctx context.Context, current []*data.Object, component string) ([]*data.Object, error) {
	next := make([]*data.Object, 0)

	for _, parent := range current {
		if !data.HasGlob(component) {
			obj, err := i.read(ctx, data.JoinPath(parent.Path, component))
			if errors.Is(err, data.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
			}
			next = append(next, obj)
			continue
		}

		children, err := i.backend.ListObjects(ctx, parent.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
		}

		for _, child := range children {
			// Pattern syntax was checked upfront
			if matched, _ := path.Match(component, child.Name); matched {
				next = append(next, child)
			}
		}
	}

	return next, nil
}

func filter(objects []*data.Object, kinds []data.Kind) []*data.Object {
	seen := make(map[string]struct{}, len(objects))
	result := make([]*data.Object, 0, len(objects))

	for _, obj := range objects {
		if !obj.Kind.Matches(kinds) {
			continue
		}
		if _, exists := seen[obj.Path]; exists {
			continue
		}
		seen[obj.Path] = struct{}{}
		result = append(result, obj)
	}

	sort.Slice(result, func(a, b int) bool {
		return result[a].Path < result[b].Path
	})

	return result
}
