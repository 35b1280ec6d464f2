package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mwantia/vsh/data"
	"gopkg.in/yaml.v3"
)

// Seed describes an initial inventory tree.
//
//	objects:
//	  - name: dc1
//	    kind: Datacenter
//	    children:
//	      - name: esx01
//	        kind: HostSystem
//	        attributes:
//	          state: connected
type Seed struct {
	Objects []SeedObject `yaml:"objects"`
}

type SeedObject struct {
	Name       string            `yaml:"name"`
	Kind       string            `yaml:"kind"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Children   []SeedObject      `yaml:"children,omitempty"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(r io.Reader) (*Seed, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var seed Seed
	if err := decoder.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	return &seed, nil
}

// LoadSeedFile reads the seed at filename and applies it.
func (i *Inventory) LoadSeedFile(ctx context.Context, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	seed, err := ParseSeed(f)
	if err != nil {
		return err
	}

	return i.ApplySeed(ctx, seed)
}

// ApplySeed creates every object of the seed below the root. Objects that
// already exist are kept and only their children are applied.
func (i *Inventory) ApplySeed(ctx context.Context, seed *Seed) error {
	count, err := i.applySeedObjects(ctx, i.Root(), seed.Objects)
	if err != nil {
		return err
	}

	i.log.Info("Seeded %d object(s)", count)
	return nil
}

func (i *Inventory) applySeedObjects(ctx context.Context, parent *data.Object, objects []SeedObject) (int, error) {
	count := 0

	for _, entry := range objects {
		kind, err := data.ParseKind(entry.Kind)
		if err != nil {
			return count, fmt.Errorf("seed object '%s': %w", data.JoinPath(parent.Path, entry.Name), err)
		}

		obj, err := i.Create(ctx, parent, entry.Name, kind)
		switch {
		case errors.Is(err, data.ErrExist):
			if obj, err = i.Get(ctx, data.JoinPath(parent.Path, entry.Name)); err != nil {
				return count, err
			}
		case err != nil:
			return count, err
		default:
			count++
		}

		if len(entry.Attributes) > 0 {
			for key, value := range entry.Attributes {
				obj.SetAttribute(key, value)
			}
			if err := i.Update(ctx, obj); err != nil {
				return count, err
			}
		}

		created, err := i.applySeedObjects(ctx, obj, entry.Children)
		count += created
		if err != nil {
			return count, err
		}
	}

	return count, nil
}
