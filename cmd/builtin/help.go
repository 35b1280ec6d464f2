package builtin

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mwantia/vsh/cmd"
)

type HelpCommand struct {
	shell Shell
	spec  *cmd.Spec
}

func NewHelpCommand(shell Shell) *HelpCommand {
	return &HelpCommand{
		shell: shell,
		spec: cmd.MustSpec("help", "Show available commands or the help of one command",
			cmd.WithArgument("command", "Command to describe", cmd.ArgumentConfig{
				Optional: true,
			}),
		),
	}
}

func (help *HelpCommand) Name() string {
	return help.spec.Name()
}

func (help *HelpCommand) Spec() *cmd.Spec {
	return help.spec
}

func (help *HelpCommand) Execute(ctx context.Context, session cmd.Session, args *cmd.CommandArgs) error {
	if name := args.String("command"); name != "" {
		command, err := help.shell.Command(name)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(session.Output(), command.Spec().Help())
		return err
	}

	w := tabwriter.NewWriter(session.Output(), 0, 4, 2, ' ', 0)
	for _, command := range help.shell.Commands() {
		fmt.Fprintf(w, "%s\t%s\n", command.Name(), command.Spec().Summary())
	}

	return w.Flush()
}
