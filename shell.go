package vsh

import (
	"fmt"
	"sync"

	"github.com/mwantia/vsh/cmd"
	"github.com/mwantia/vsh/cmd/builtin"
	"github.com/mwantia/vsh/inventory"
	"github.com/mwantia/vsh/log"
)

// Shell dispatches command lines to registered commands. Arguments are
// resolved against the inventory, relative to the current directory of
// the shell.
type Shell struct {
	mu      sync.RWMutex
	cmds    map[string]cmd.Command
	aliases map[string][]string

	cursor  *inventory.Cursor
	options *ShellOptions
	log     *log.Logger
}

func NewShell(inv *inventory.Inventory, opts ...ShellOption) (*Shell, error) {
	options := newDefaultShellOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	shell := &Shell{
		cmds:    make(map[string]cmd.Command),
		aliases: make(map[string][]string),
		cursor:  inventory.NewCursor(inv),
		options: options,
		log:     options.Logger.Named("shell"),
	}

	if options.Builtins {
		for _, command := range builtin.Commands(shell) {
			if err := shell.Register(command); err != nil {
				return nil, err
			}
		}
	}

	for name, target := range options.Aliases {
		if err := shell.Alias(name, target); err != nil {
			return nil, fmt.Errorf("alias '%s': %w", name, err)
		}
	}

	return shell, nil
}

// Cursor returns the current directory of the shell.
func (s *Shell) Cursor() *inventory.Cursor {
	return s.cursor
}

// Inventory returns the inventory commands operate on.
func (s *Shell) Inventory() *inventory.Inventory {
	return s.cursor.Inventory()
}
