package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/config"
	"github.com/cemilcan0/debt-tracking-app/internal/storage/sqlite"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, force bool) error {
	if _, err := os.Stat(a.configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Database.Path = a.cfg.Database.Path
	if err := config.Save(a.configPath, cfg); err != nil {
		return err
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledger at %s (config: %s)\n", cfg.Database.Path, a.configPath)
	return nil
}
