package host

import (
	"context"
	"strconv"
	"time"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
	"github.com/mwantia/vsh/inventory"
)

func NewEnterMaintenanceModeCommand(inv *inventory.Inventory) cmd.Command {
	return newMaintenanceCommand(inv, "host.enter_maintenance_mode", "Put hosts into maintenance mode", true)
}

func NewExitMaintenanceModeCommand(inv *inventory.Inventory) cmd.Command {
	return newMaintenanceCommand(inv, "host.exit_maintenance_mode", "Take hosts out of maintenance mode", false)
}

func newMaintenanceCommand(inv *inventory.Inventory, name, summary string, enter bool) cmd.Command {
	spec := cmd.MustSpec(name, summary,
		cmd.WithOption("timeout", "Timeout", cmd.OptionConfig{
			Default: time.Duration(0),
		}),
		cmd.WithArgument("host", "", cmd.ArgumentConfig{
			Multi:  true,
			Lookup: hostKinds,
		}),
	)

	return cmd.NewCommand(spec, func(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
		timeout := args.OptionDuration("timeout")

		return tasks(ctx, session, args.Objects("host"), timeout, func(ctx context.Context, host *data.Object) error {
			host.SetAttribute(AttributeMaintenance, strconv.FormatBool(enter))
			return inv.Update(ctx, host)
		})
	})
}
