package main

import (
	"context"
	"fmt"

	"github.com/mwantia/vsh"
	"github.com/mwantia/vsh/commands/host"
	"github.com/mwantia/vsh/config"
	"github.com/mwantia/vsh/inventory"
	"github.com/mwantia/vsh/log"
	"github.com/spf13/cobra"
)

// app holds everything a cobra command needs to drive the shell.
type app struct {
	inv   *inventory.Inventory
	shell *vsh.Shell
	log   *log.Logger
}

func newApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}

	// Explicit flags win over the configuration file and environment
	if cmd.Flags().Changed("inventory") {
		cfg.Inventory.Address = flags.inventory
	}
	if cmd.Flags().Changed("seed") {
		cfg.Inventory.Seed = flags.seed
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = flags.logFile
	}

	logger, err := cfg.NewLogger("vsh")
	if err != nil {
		return nil, err
	}

	b, err := inventory.ParseBackendAddress(cfg.Inventory.Address)
	if err != nil {
		return nil, err
	}

	inv := inventory.NewInventory(b, inventory.WithLogger(logger))
	if err := inv.Open(ctx); err != nil {
		return nil, err
	}

	if cfg.Inventory.Seed != "" {
		if err := inv.LoadSeedFile(ctx, cfg.Inventory.Seed); err != nil {
			inv.Close(context.Background())
			return nil, fmt.Errorf("failed to seed inventory: %w", err)
		}
	}

	opts := append(cfg.ShellOptions(),
		vsh.WithOutput(cmd.OutOrStdout()),
		vsh.WithLogger(logger),
	)

	shell, err := vsh.NewShell(inv, opts...)
	if err != nil {
		inv.Close(context.Background())
		return nil, err
	}

	for _, command := range host.Commands(inv) {
		if err := shell.Register(command); err != nil {
			inv.Close(context.Background())
			return nil, err
		}
	}

	logger.Debug("Using inventory backend '%s'", inv.Backend())

	return &app{
		inv:   inv,
		shell: shell,
		log:   logger,
	}, nil
}

func (a *app) Close() {
	if err := a.inv.Close(context.Background()); err != nil {
		a.log.Warn("Failed to close inventory: %v", err)
	}
}
