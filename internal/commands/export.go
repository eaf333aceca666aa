package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/export"
	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
)

func newExportCommand(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export transactions to an xlsx workbook",
		Long:  "Export one person's transactions, or everyone's with a per-person summary sheet when no name is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				exporter := export.NewService(svc, dir)

				var path string
				subject := "The ledger"
				if len(args) == 0 {
					p, err := exporter.ExportAll(ctx)
					if err != nil {
						return notice(cmd, err, subject)
					}
					path = p
				} else {
					subject = fmt.Sprintf("Person %q", args[0])
					person, err := svc.FindPerson(ctx, args[0])
					if err != nil {
						return notice(cmd, err, subject)
					}
					if path, err = exporter.ExportPerson(ctx, person.ID); err != nil {
						return notice(cmd, err, subject)
					}
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (overrides config)")

	return cmd
}
