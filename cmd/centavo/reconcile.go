package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/model"
)

func reconcileCmd() *cobra.Command {
	var (
		monthFlag string
		yearFlag  string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match imported transactions against the payment schedule",
		Long: `Run the payment matcher for every schedule entry of a budget period
against the imported transaction pool and report the statuses it derives.
Nothing is persisted; use 'centavo schedule pay' to record a payment.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			month, year, err := resolvePeriod(monthFlag, yearFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			results, err := newPaymentService(store).ReconcilePeriod(ctx, month, year, time.Now())
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No schedule entries for %s %d.", month, year)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Reconciliation for %s %d", month, year)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Obligation"),
				cli.TableHeaderStyle.Render("Expected"),
				cli.TableHeaderStyle.Render("Matched"),
				cli.TableHeaderStyle.Render("Status"),
				cli.TableHeaderStyle.Render("Candidates"))

			var unpaid int
			for _, r := range results {
				matched := cli.SubtleStyle.Render("-")
				if r.Match.PaidAmount != 0 {
					matched = cli.FormatAmount(r.Match.PaidAmount)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					r.ObligationName,
					cli.FormatAmount(r.ExpectedAmount),
					matched,
					cli.FormatStatus(r.Status),
					len(r.Match.Transactions))
				if r.Status != model.StatusPaid {
					unpaid++
				}
			}
			_ = w.Flush()

			if unpaid > 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%d obligation(s) not fully paid", unpaid)))
			} else {
				fmt.Println(cli.FormatSuccess("All obligations settled"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "budget month (full name, default: current)")
	cmd.Flags().StringVar(&yearFlag, "year", "", "budget year (default: current)")

	return cmd
}
