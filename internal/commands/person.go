package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
)

func newPersonCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people",
	}
	cmd.AddCommand(
		newPersonAddCommand(a),
		newPersonListCommand(a),
		newPersonDeleteCommand(a),
	)
	return cmd
}

func newPersonAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				id, err := svc.AddPerson(ctx, args[0])
				if errors.Is(err, ledger.ErrDuplicateName) {
					return fmt.Errorf("%w (id %d)", err, id)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added person %d\n", id)
				return nil
			})
		},
	}
}

func newPersonListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				people, err := svc.ListPeople(ctx)
				if err != nil {
					return err
				}
				if len(people) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No people recorded.")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME")
				for _, p := range people {
					fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Name)
				}
				return w.Flush()
			})
		},
	}
}

func newPersonDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a person and all of their transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd, func(ctx context.Context, svc *ledger.Service) error {
				subject := fmt.Sprintf("Person %q", args[0])
				p, err := svc.FindPerson(ctx, args[0])
				if err != nil {
					return notice(cmd, err, subject)
				}
				if !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Delete %s and all of their transactions?", p.Name))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
						return nil
					}
				}
				if err := svc.DeletePerson(ctx, p.ID); err != nil {
					return notice(cmd, err, subject)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", p.Name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
