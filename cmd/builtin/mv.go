package builtin

import (
	"context"
	"errors"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/data"
)

type MvCommand struct {
	shell Shell
	spec  *cmd.Spec
}

func NewMvCommand(shell Shell) *MvCommand {
	return &MvCommand{
		shell: shell,
		spec: cmd.MustSpec("mv", "Move or rename an inventory object",
			cmd.WithArgument("src", "Object to move", cmd.ArgumentConfig{
				Lookup: data.AllKinds(),
			}),
			cmd.WithArgument("dst", "New location, or an existing container to move into", cmd.ArgumentConfig{
				LookupParent: data.ContainerKinds(),
			}),
		),
	}
}

func (mv *MvCommand) Name() string {
	return mv.spec.Name()
}

func (mv *MvCommand) Spec() *cmd.Spec {
	return mv.spec
}

func (mv *MvCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
	inv := mv.shell.Cursor().Inventory()

	src := args.Object("src")
	dst, _ := args.ParentLeaf("dst")

	parent, name := dst.Parent, dst.Leaf

	// An existing container as destination receives the source
	existing, err := inv.Get(ctx, data.JoinPath(dst.Parent.Path, dst.Leaf))
	switch {
	case err == nil && existing.Kind.IsContainer():
		parent, name = existing, src.Name
	case err != nil && !errors.Is(err, data.ErrNotExist):
		return err
	}

	moved, err := inv.Move(ctx, src.Path, parent, name)
	if err != nil {
		return err
	}

	session.Logger().Info("Moved '%s' to '%s'", src, moved)
	return nil
}
