package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage imported transactions",
		Long:  `List and delete the raw transactions reconciliation draws from.`,
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		accountID string
		fromDate  string
		toDate    string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := service.TransactionFilter{AccountID: accountID, Limit: limit}
			if fromDate != "" {
				t, err := time.Parse("2006-01-02", fromDate)
				if err != nil {
					return fmt.Errorf("invalid --from date %q: %w", fromDate, err)
				}
				filter.StartDate = &t
			}
			if toDate != "" {
				t, err := time.Parse("2006-01-02", toDate)
				if err != nil {
					return fmt.Errorf("invalid --to date %q: %w", toDate, err)
				}
				filter.EndDate = &t
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns, err := store.ListTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Account"))

			total := 0.0
			for _, txn := range txns {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.Date.Format("2006-01-02"),
					txn.Name,
					cli.FormatAmount(txn.Amount),
					txn.AccountID)
				total += txn.Amount
			}
			fmt.Fprintf(w, "\t\t%s\t%s\t\n", cli.BoldStyle.Render("Total"), cli.FormatAmount(total))

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account ID")
	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 = all)")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Long: `Delete a transaction by ID. With --reverse, a payment transaction is
fully unwound first: the matched schedule entry's paid amount and status
and the owning account's balance are restored along with the deletion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if reverse {
				payments := newPaymentService(store)
				if err := payments.ReversePayment(ctx, id); err != nil {
					return fmt.Errorf("failed to reverse payment: %w", err)
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reversed payment %s", id)))
				return nil
			}

			if err := store.DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "unwind schedule and balance effects before deleting")

	return cmd
}
