package builtin

import (
	"context"

	"github.com/mwantia/vsh/cmd"
)

type CdCommand struct {
	shell Shell
	spec  *cmd.Spec
}

func NewCdCommand(shell Shell) *CdCommand {
	return &CdCommand{
		shell: shell,
		spec: cmd.MustSpec("cd", "Change the current directory",
			cmd.WithArgument("path", "Directory to enter, the root when omitted", cmd.ArgumentConfig{
				Optional: true,
				Default:  "/",
			}),
		),
	}
}

func (cd *CdCommand) Name() string {
	return cd.spec.Name()
}

func (cd *CdCommand) Spec() *cmd.Spec {
	return cd.spec
}

// Execute resolves the path itself, so a missing or ambiguous directory is
// reported instead of silently falling back to the default.
func (cd *CdCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
	_, err := cd.shell.Cursor().Chdir(ctx, args.String("path"))
	return err
}
