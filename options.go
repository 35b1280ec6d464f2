package vsh

import (
	"io"
	"os"

	"github.com/mwantia/vsh/log"
)

type ShellOptions struct {
	Prompt   string
	Output   io.Writer
	Logger   *log.Logger
	Aliases  map[string]string
	Builtins bool
}

type ShellOption func(*ShellOptions) error

func newDefaultShellOptions() *ShellOptions {
	return &ShellOptions{
		Prompt:   "{cwd}> ",
		Output:   os.Stdout,
		Logger:   log.Discard(),
		Aliases:  make(map[string]string),
		Builtins: true,
	}
}

// WithPrompt sets the REPL prompt. "{cwd}" is replaced with the current directory.
func WithPrompt(prompt string) ShellOption {
	return func(opts *ShellOptions) error {
		opts.Prompt = prompt
		return nil
	}
}

func WithOutput(w io.Writer) ShellOption {
	return func(opts *ShellOptions) error {
		opts.Output = w
		return nil
	}
}

func WithLogger(logger *log.Logger) ShellOption {
	return func(opts *ShellOptions) error {
		opts.Logger = logger
		return nil
	}
}

// WithAlias registers name as a shortcut for the command line target.
func WithAlias(name, target string) ShellOption {
	return func(opts *ShellOptions) error {
		if name == "" || target == "" {
			return ErrInvalidAlias
		}

		opts.Aliases[name] = target
		return nil
	}
}

func WithoutBuiltins() ShellOption {
	return func(opts *ShellOptions) error {
		opts.Builtins = false
		return nil
	}
}
