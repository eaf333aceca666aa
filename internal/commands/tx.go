package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
)

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}
	cmd.AddCommand(
		newTxAddCommand(a),
		newTxDeleteCommand(a),
	)
	return cmd
}

func newTxAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <date> <credit|debit> <amount>",
		Short: "Add a transaction to an existing person",
		Long:  "Add a transaction to an existing person. The date is day.month.year, e.g. 15.03.2024.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ledger.TransactionInput{Date: args[1], Kind: args[2], Amount: args[3]}
			if _, err := ledger.ParseTransaction(in); err != nil {
				return err
			}
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				subject := fmt.Sprintf("Person %q", args[0])
				p, err := svc.FindPerson(ctx, args[0])
				if err != nil {
					return notice(cmd, err, subject)
				}
				id, err := svc.AddTransaction(ctx, p.ID, in)
				if err != nil {
					return notice(cmd, err, subject)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %d for %s\n", id, p.Name)
				return nil
			})
		},
	}
}

func newTxDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: transaction id %q is not a number", ledger.ErrInvalidInput, args[0])
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete transaction %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				if err := svc.DeleteTransaction(ctx, id); err != nil {
					return notice(cmd, err, fmt.Sprintf("Transaction %d", id))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
