package builtin

import (
	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/inventory"
)

// Shell is the part of the running shell the builtin commands depend on.
type Shell interface {
	// Cursor returns the current directory of the shell
	Cursor() *inventory.Cursor

	// Commands returns every registered command sorted by name
	Commands() []cmd.Command

	// Command returns a command by name or alias
	Command(name string) (cmd.Command, error)
}

// Commands returns every builtin command bound to shell.
func Commands(shell Shell) []cmd.Command {
	return []cmd.Command{
		NewLsCommand(shell),
		NewCdCommand(shell),
		NewPwdCommand(shell),
		NewMkdirCommand(shell),
		NewRmCommand(shell),
		NewMvCommand(shell),
		NewHelpCommand(shell),
	}
}
