package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/buildinfo"
	"github.com/cemilcan0/debt-tracking-app/internal/config"
	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
	"github.com/cemilcan0/debt-tracking-app/internal/logging"
	"github.com/cemilcan0/debt-tracking-app/internal/storage/sqlite"
)

// app carries the resolved configuration shared by every subcommand.
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "debttrack",
		Short:   "Personal ledger of money owed to and by people",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.FileName, "config file")
	flags.StringVar(&a.dbPath, "db", "", "database file (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newInitCommand(a),
		newPersonCommand(a),
		newTxCommand(a),
		newEntryCommand(a),
		newListCommand(a),
		newExportCommand(a),
		newImportCommand(a),
	)

	return rootCmd
}

// load resolves configuration with precedence flags > env > file > defaults
// and installs the logger.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	config.ApplyEnv(cfg)
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// withLedger opens the database for the duration of fn.
func (a *app) withLedger(cmd *cobra.Command, fn func(ctx context.Context, svc *ledger.Service) error) error {
	store, err := sqlite.New(a.cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cmd.Context(), ledger.NewService(store))
}

// notice reports ErrNotFound and ErrEmptyLedger as informational messages
// about subject and swallows them. Any other error is returned unchanged.
func notice(cmd *cobra.Command, err error, subject string) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		fmt.Fprintf(cmd.OutOrStdout(), "%s not found.\n", subject)
	case errors.Is(err, ledger.ErrEmptyLedger):
		fmt.Fprintf(cmd.OutOrStdout(), "%s has no transactions.\n", subject)
	default:
		return err
	}
	return nil
}
