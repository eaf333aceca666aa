package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
	"github.com/cemilcan0/debt-tracking-app/internal/model"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [name]",
		Short: "Show transactions with credit, debit and balance totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				var personID int64
				subject := "The ledger"
				if len(args) == 1 {
					subject = fmt.Sprintf("Person %q", args[0])
					p, err := svc.FindPerson(ctx, args[0])
					if err != nil {
						return notice(cmd, err, subject)
					}
					personID = p.ID
				}

				rows, err := svc.ListTransactions(ctx, personID)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					return notice(cmd, ledger.ErrEmptyLedger, subject)
				}
				return printRows(cmd.OutOrStdout(), rows)
			})
		},
	}
}

func printRows(out io.Writer, rows []model.Row) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPERSON\tDATE\tKIND\tAMOUNT")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.TransactionID, r.PersonName, ledger.FormatDate(r.Date), r.Kind.Label(), r.Amount.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	totals := ledger.Aggregate(rows)
	_, err := fmt.Fprintf(out, "Total Credit: %s | Total Debit: %s | Balance: %s\n",
		totals.Credit.StringFixed(2), totals.Debit.StringFixed(2), totals.Balance.StringFixed(2))
	return err
}
