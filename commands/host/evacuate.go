package host

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory"
	"golang.org/x/sync/errgroup"
)

// ErrNoDestination is returned when no destination host can receive the
// virtual machines of the evacuated host.
var ErrNoDestination = errors.New("no compatible destination host")

func NewEvacuateCommand(inv *inventory.Inventory) cmd.Command {
	spec := cmd.MustSpec("host.evacuate", "Move all VMs away from this host",
		cmd.WithOption("num", "Maximum concurrent moves", cmd.OptionConfig{
			Default: 4,
		}),
		cmd.WithArgument("src", "", cmd.ArgumentConfig{
			Lookup: hostKinds,
		}),
		cmd.WithArgument("dst", "", cmd.ArgumentConfig{
			Multi:  true,
			Lookup: []data.Kind{data.KindComputeResource, data.KindClusterComputeResource},
		}),
	)

	return cmd.NewCommand(spec, func(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
		num := args.OptionInt("num")
		if num < 1 {
			return fmt.Errorf("%w: num must be positive", data.ErrInvalid)
		}

		src := args.Object("src")

		hosts, err := destinationHosts(ctx, inv, src, args.Objects("dst"))
		if err != nil {
			return err
		}

		vms, err := virtualMachines(ctx, inv, src)
		if err != nil {
			return err
		}
		if len(vms) == 0 {
			return nil
		}
		if len(hosts) == 0 {
			names := make([]string, len(vms))
			for i, vm := range vms {
				names[i] = vm.Name
			}
			return fmt.Errorf("%w for %s", ErrNoDestination, strings.Join(names, ", "))
		}

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(num)

		for i, vm := range vms {
			target := hosts[i%len(hosts)]

			g.Go(func() error {
				moved, err := inv.Move(gctx, vm.Path, target, vm.Name)
				if err != nil {
					return fmt.Errorf("%s: %w", vm, err)
				}

				moved.SetAttribute(AttributeHost, target.Name)
				if err := inv.Update(gctx, moved); err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintf(session.Output(), "%s -> %s\n", vm, target)
				return nil
			})
		}

		return g.Wait()
	})
}

// destinationHosts returns the connected hosts below dsts that are neither
// src nor in maintenance mode.
func destinationHosts(ctx context.Context, inv *inventory.Inventory, src *data.Object, dsts []*data.Object) ([]*data.Object, error) {
	seen := make(map[string]struct{})
	hosts := make([]*data.Object, 0)

	for _, dst := range dsts {
		children, err := inv.List(ctx, dst.Path)
		if err != nil {
			return nil, err
		}

		for _, host := range children {
			if host.Kind != data.KindHostSystem || host.Path == src.Path {
				continue
			}
			if !IsConnected(host) || InMaintenance(host) {
				continue
			}
			if _, exists := seen[host.Path]; exists {
				continue
			}

			seen[host.Path] = struct{}{}
			hosts = append(hosts, host)
		}
	}

	return hosts, nil
}

func virtualMachines(ctx context.Context, inv *inventory.Inventory, host *data.Object) ([]*data.Object, error) {
	children, err := inv.List(ctx, host.Path)
	if err != nil {
		return nil, err
	}

	vms := make([]*data.Object, 0, len(children))
	for _, child := range children {
		if child.Kind == data.KindVirtualMachine {
			vms = append(vms, child)
		}
	}

	return vms, nil
}
