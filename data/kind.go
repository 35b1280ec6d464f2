package data

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the type of an inventory object.
type Kind string

// Inventory kinds known to the naming service.
const (
	KindFolder                 Kind = "Folder"
	KindDatacenter             Kind = "Datacenter"
	KindHostSystem             Kind = "HostSystem"
	KindComputeResource        Kind = "ComputeResource"
	KindClusterComputeResource Kind = "ClusterComputeResource"
	KindVirtualMachine         Kind = "VirtualMachine"
	KindDatastore              Kind = "Datastore"
	KindNetwork                Kind = "Network"
	KindResourcePool           Kind = "ResourcePool"
)

var knownKinds = []Kind{
	KindFolder,
	KindDatacenter,
	KindHostSystem,
	KindComputeResource,
	KindClusterComputeResource,
	KindVirtualMachine,
	KindDatastore,
	KindNetwork,
	KindResourcePool,
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, kind := range knownKinds {
		if strings.EqualFold(string(kind), name) {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: unknown kind '%s'", ErrInvalid, name)
}

// Matches reports whether k is part of kinds.
// An empty kinds list matches every kind.
func (k Kind) Matches(kinds []Kind) bool {
	return len(kinds) == 0 || slices.Contains(kinds, k)
}

// IsContainer reports whether objects of this kind may hold children
// created from the shell.
func (k Kind) IsContainer() bool {
	switch k {
	case KindFolder, KindDatacenter, KindComputeResource, KindClusterComputeResource, KindHostSystem, KindResourcePool:
		return true
	default:
		return false
	}
}

// ContainerKinds returns every kind that may hold children.
func ContainerKinds() []Kind {
	kinds := make([]Kind, 0, len(knownKinds))
	for _, kind := range knownKinds {
		if kind.IsContainer() {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

// AllKinds returns every known kind.
func AllKinds() []Kind {
	return slices.Clone(knownKinds)
}
