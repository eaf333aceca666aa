package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
)

func newEntryCommand(a *app) *cobra.Command {
	var reuse bool

	cmd := &cobra.Command{
		Use:   "entry <name> <date> <credit|debit> <amount>",
		Short: "Record a transaction, creating the person if needed",
		Long: `Record a transaction, creating the person if needed.

If a person with the same name already exists you are asked whether to add the
transaction to them. --reuse, or ledger.duplicate_policy: reuse in the config,
answers yes without asking.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ledger.RecordParams{
				Name:             args[0],
				TransactionInput: ledger.TransactionInput{Date: args[1], Kind: args[2], Amount: args[3]},
				Reuse:            reuse || a.cfg.ReuseExisting(),
			}
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				res, err := svc.RecordEntry(ctx, params)
				if errors.Is(err, ledger.ErrDuplicateName) {
					ok, cerr := confirm(cmd, fmt.Sprintf("Person %q already exists. Add the transaction to them?", params.Name))
					if cerr != nil {
						return cerr
					}
					if !ok {
						return err
					}
					params.Reuse = true
					res, err = svc.RecordEntry(ctx, params)
				}
				if err != nil {
					return err
				}

				if res.Reused {
					fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %d to existing person %d\n", res.TransactionID, res.PersonID)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Added person %d with transaction %d\n", res.PersonID, res.TransactionID)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reuse, "reuse", false, "add to an existing person with the same name")

	return cmd
}
