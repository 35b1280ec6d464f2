package builtin

import (
	"context"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
)

type MkdirCommand struct {
	shell Shell
	spec  *cmd.Spec
}

func NewMkdirCommand(shell Shell) *MkdirCommand {
	return &MkdirCommand{
		shell: shell,
		spec: cmd.MustSpec("mkdir", "Create an inventory object",
			cmd.WithOption("kind", "Kind of the new object", cmd.OptionConfig{
				Short:   "k",
				Default: string(data.KindFolder),
			}),
			cmd.WithArgument("path", "Location of the new object", cmd.ArgumentConfig{
				LookupParent: data.ContainerKinds(),
			}),
		),
	}
}

func (mkdir *MkdirCommand) Name() string {
	return mkdir.spec.Name()
}

func (mkdir *MkdirCommand) Spec() *cmd.Spec {
	return mkdir.spec
}

func (mkdir *MkdirCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
	kind, err := data.ParseKind(args.OptionString("kind"))
	if err != nil {
		return err
	}

	target, _ := args.ParentLeaf("path")

	obj, err := mkdir.shell.Cursor().Inventory().Create(ctx, target.Parent, target.Leaf, kind)
	if err != nil {
		return err
	}

	session.Logger().Info("Created %s '%s'", kind, obj)
	return nil
}
