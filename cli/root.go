package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	config    string
	inventory string
	seed      string
	logLevel  string
	logFile   string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "vsh",
		Short:         "Interactive shell for a managed inventory",
		Long:          "vsh navigates an inventory of datacenters, hosts and virtual machines and runs commands against it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.shell.Run(cmd.Context(), cmd.InOrStdin())
		},
	}

	// Hide the completion command
	root.CompletionOptions.HiddenDefaultCmd = true

	pflags := root.PersistentFlags()
	pflags.StringVar(&flags.config, "config", "", "config file (default is $XDG_CONFIG_HOME/vsh/config.toml)")
	pflags.StringVar(&flags.inventory, "inventory", "", "inventory backend address, e.g. sqlite://inventory.db")
	pflags.StringVar(&flags.seed, "seed", "", "YAML file applied to the inventory on startup")
	pflags.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pflags.StringVar(&flags.logFile, "log-file", "", "additionally write logs into this rotated file")

	root.AddCommand(newExecCommand(flags))
	root.AddCommand(newCommandsCommand(flags))

	return root
}

func newExecCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a single shell command and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.shell.Execute(cmd.Context(), args...)
		},
	}
}

func newCommandsCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List every available shell command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			for _, command := range app.shell.Commands() {
				fmt.Fprintln(cmd.OutOrStdout(), command.Spec().Usage())
			}

			return nil
		},
	}
}
