package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/importer"
	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
)

func newImportCommand(a *app) *cobra.Command {
	var reuse bool
	var dir string

	cmd := &cobra.Command{
		Use:   "import [file.csv...]",
		Short: "Import transactions from CSV files",
		Long: `Import transactions from CSV files with the columns person, date, kind, amount.

Without arguments every CSV in the import directory is imported and then moved
to its processed/ subdirectory. Each file is imported atomically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reuse = reuse || a.cfg.ReuseExisting()
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				if len(args) > 0 {
					for _, path := range args {
						if err := importFile(ctx, cmd, svc, path, reuse); err != nil {
							return err
						}
					}
					return nil
				}

				files, err := importer.Scan(dir)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No CSV files in %s\n", dir)
					return nil
				}
				for _, f := range files {
					if err := importFile(ctx, cmd, svc, f.Path, reuse); err != nil {
						return err
					}
					if err := importer.MarkProcessed(dir, f.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reuse, "reuse", false, "add rows to existing people with the same name")
	cmd.Flags().StringVar(&dir, "dir", "import", "directory scanned when no files are given")

	return cmd
}

func importFile(ctx context.Context, cmd *cobra.Command, svc *ledger.Service, path string, reuse bool) error {
	entries, err := importer.Load(path)
	if err != nil {
		return err
	}
	if err := svc.Import(ctx, entries, reuse); err != nil {
		return notice(cmd, fmt.Errorf("%s: %w", path, err), fmt.Sprintf("File %s", path))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s\n", len(entries), path)
	return nil
}
