package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/vsh/cmd"
)

type PwdCommand struct {
	shell Shell
	spec  *cmd.Spec
}

func NewPwdCommand(shell Shell) *PwdCommand {
	return &PwdCommand{
		shell: shell,
		spec:  cmd.MustSpec("pwd", "Print the current directory"),
	}
}

func (pwd *PwdCommand) Name() string {
	return pwd.spec.Name()
}

func (pwd *PwdCommand) Spec() *cmd.Spec {
	return pwd.spec
}

func (pwd *PwdCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
	_, err := fmt.Fprintf(session.Output(), "/%s\n", pwd.shell.Cursor().Cwd())
	return err
}
