package host

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory"
)

// ErrNotInMaintenance is returned when rebooting a host still serving workloads.
var ErrNotInMaintenance = errors.New("host is not in maintenance mode")

func NewRebootCommand(inv *inventory.Inventory) cmd.Command {
	spec := cmd.MustSpec("host.reboot", "Reboot a host",
		cmd.WithOption("force", "Reboot even if not in maintenance mode", cmd.OptionConfig{
			Default: false,
		}),
		cmd.WithArgument("host", "", cmd.ArgumentConfig{
			Multi:  true,
			Lookup: hostKinds,
		}),
	)

	return cmd.NewCommand(spec, func(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
		force := args.OptionBool("force")

		return tasks(ctx, session, args.Objects("host"), 0, func(ctx context.Context, host *data.Object) error {
			if !force && !InMaintenance(host) {
				return ErrNotInMaintenance
			}

			count, _ := strconv.Atoi(host.Attribute(AttributeBootCount, "0"))
			host.SetAttribute(AttributeBootCount, strconv.Itoa(count+1))
			host.SetAttribute(AttributeLastBoot, time.Now().UTC().Format(time.RFC3339))
			host.SetAttribute(AttributeState, StateConnected)

			session.Logger().Debug("Rebooting '%s'", host)
			return inv.Update(ctx, host)
		})
	})
}
