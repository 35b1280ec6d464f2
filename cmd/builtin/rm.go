package builtin

import (
	"context"
	"strings"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
)

type RmCommand struct {
	shell Shell
	spec  *cmd.Spec
}

func NewRmCommand(shell Shell) *RmCommand {
	return &RmCommand{
		shell: shell,
		spec: cmd.MustSpec("rm", "Remove inventory objects",
			cmd.WithOption("recursive", "Remove objects together with their children", cmd.OptionConfig{
				Short:   "r",
				Default: false,
			}),
			cmd.WithArgument("path", "Objects to remove", cmd.ArgumentConfig{
				Multi:  true,
				Lookup: data.AllKinds(),
			}),
		),
	}
}

func (rm *RmCommand) Name() string {
	return rm.spec.Name()
}

func (rm *RmCommand) Spec() *cmd.Spec {
	return rm.spec
}

func (rm *RmCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
	recursive := args.OptionBool("recursive")
	removed := make([]string, 0)

	for _, obj := range args.Objects("path") {
		if covered(removed, obj.Path) {
			continue
		}

		if err := rm.shell.Cursor().Inventory().Delete(ctx, obj.Path, recursive); err != nil {
			return err
		}
		removed = append(removed, obj.Path)
		session.Logger().Info("Removed '%s'", obj)
	}

	return nil
}

// covered reports whether p is one of removed or lies below one of them.
func covered(removed []string, p string) bool {
	for _, r := range removed {
		if p == r || strings.HasPrefix(p, r+"/") {
			return true
		}
	}

	return false
}
