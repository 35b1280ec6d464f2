// Package host provides the host.* commands operating on HostSystem objects.
package host

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory"
	"golang.org/x/sync/errgroup"
)

// Attributes maintained on HostSystem and VirtualMachine objects.
const (
	AttributeState       = "state"
	AttributeMaintenance = "maintenance"
	AttributeBootCount   = "boot_count"
	AttributeLastBoot    = "last_boot"
	AttributeHost        = "host"

	StateConnected = "connected"
)

var hostKinds = []data.Kind{data.KindHostSystem}

// Commands returns every host command bound to inv.
func Commands(inv *inventory.Inventory) []cmd.Command {
	return []cmd.Command{
		NewRebootCommand(inv),
		NewEvacuateCommand(inv),
		NewEnterMaintenanceModeCommand(inv),
		NewExitMaintenanceModeCommand(inv),
	}
}

// InMaintenance reports whether the host is in maintenance mode.
func InMaintenance(host *data.Object) bool {
	value, _ := strconv.ParseBool(host.Attribute(AttributeMaintenance, "false"))
	return value
}

// IsConnected reports whether the host accepts workloads. Hosts without a
// state attribute count as connected.
func IsConnected(host *data.Object) bool {
	return host.Attribute(AttributeState, StateConnected) == StateConnected
}

// tasks runs fn for every host concurrently and waits for all of them. The
// whole batch is bounded by timeout when it is positive.
func tasks(ctx context.Context, session cmd.Session, hosts []*data.Object, timeout time.Duration, fn func(context.Context, *data.Object) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	seen := make(map[string]struct{}, len(hosts))

	for _, host := range hosts {
		if _, exists := seen[host.Path]; exists {
			continue
		}
		seen[host.Path] = struct{}{}

		g.Go(func() error {
			if err := fn(gctx, host); err != nil {
				return fmt.Errorf("%s: %w", host, err)
			}

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(session.Output(), "%s: done\n", host)
			return nil
		})
	}

	return g.Wait()
}
