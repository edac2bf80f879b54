package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/cycle"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/service"
)

func cyclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Inspect billing cycles for credit accounts",
		Long: `Generate billing-cycle windows from a credit account's billing date and
aggregate its transactions into them. Cycles are computed on demand; they
are never stored.`,
	}

	cmd.AddCommand(listCyclesCmd())
	cmd.AddCommand(resolveCycleCmd())

	return cmd
}

// billingAnchor loads an account and extracts its anchor day, rejecting
// accounts that cannot generate cycles.
func billingAnchor(cmd *cobra.Command, store service.Storage, accountID string) (*model.Account, int, error) {
	account, err := store.GetAccount(cmd.Context(), accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.HasBillingAnchor() {
		return nil, 0, fmt.Errorf("account %q has no billing date; only credit accounts with a billing date have cycles", account.Name)
	}
	spec, err := model.ParseAnchor(account.BillingDate)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid billing date on account %q: %w", account.Name, err)
	}
	return account, spec.Day, nil
}

func listCyclesCmd() *cobra.Command {
	var (
		count     int
		direction string
		totals    bool
	)

	cmd := &cobra.Command{
		Use:   "list <account-id>",
		Short: "List billing cycles for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var dir cycle.Direction
			switch direction {
			case "past":
				dir = cycle.Past
			case "future":
				dir = cycle.Future
			case "both":
				dir = cycle.Both
			default:
				return fmt.Errorf("invalid direction %q: must be past, future, or both", direction)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			account, anchorDay, err := billingAnchor(cmd, store, args[0])
			if err != nil {
				return err
			}

			cycles := cycle.Generate(anchorDay, count, dir)
			if len(cycles) == 0 {
				fmt.Println(cli.InfoStyle.Render("No cycles generated."))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Billing cycles for %s (day %d)", account.Name, anchorDay)))

			var buckets []cycle.Bucket
			if totals {
				txns, err := store.GetTransactionsByAccount(ctx, account.ID)
				if err != nil {
					return fmt.Errorf("failed to load transactions: %w", err)
				}
				buckets = cycle.Aggregate(cycles, txns)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			if totals {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					cli.TableHeaderStyle.Render("Cycle"),
					cli.TableHeaderStyle.Render("Transactions"),
					cli.TableHeaderStyle.Render("Total"))
				for _, b := range buckets {
					fmt.Fprintf(w, "%s\t%d\t%s\n", b.Cycle.Label, len(b.Transactions), cli.FormatAmount(b.Total))
				}
			} else {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					cli.TableHeaderStyle.Render("Cycle"),
					cli.TableHeaderStyle.Render("Start"),
					cli.TableHeaderStyle.Render("End"))
				for _, c := range cycles {
					fmt.Fprintf(w, "%s\t%s\t%s\n", c.Label, c.Start.Format("2006-01-02"), c.End.Format("2006-01-02"))
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 6, "number of cycles to generate")
	cmd.Flags().StringVar(&direction, "direction", "both", "where to generate cycles: past, future, or both")
	cmd.Flags().BoolVar(&totals, "totals", false, "aggregate the account's transactions into each cycle")

	return cmd
}

func resolveCycleCmd() *cobra.Command {
	var (
		monthFlag string
		yearFlag  string
	)

	cmd := &cobra.Command{
		Use:   "resolve <account-id>",
		Short: "Resolve the cycle that bills in a given month",
		Long: `Find the billing cycle attributed to a budget month. A cycle belongs to
the month its end date falls in, so a Dec 13 to Jan 12 cycle bills in
January.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			account, anchorDay, err := billingAnchor(cmd, store, args[0])
			if err != nil {
				return err
			}

			c, ok := cycle.Resolve(month, year, anchorDay)
			if !ok {
				return fmt.Errorf("no cycle for %s ends in %s %d", account.Name, month, year)
			}

			txns, err := store.GetTransactionsByAccount(ctx, account.ID)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			buckets := cycle.Aggregate([]model.Cycle{c}, txns)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s %d bills cycle %s", month, year, c.Label)))
			fmt.Printf("  %s to %s, %d transactions, total %s\n",
				c.Start.Format("2006-01-02"),
				c.End.Format("2006-01-02"),
				len(buckets[0].Transactions),
				cli.FormatAmount(buckets[0].Total))

			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "budget month (full name, default: current)")
	cmd.Flags().StringVar(&yearFlag, "year", "", "budget year (default: current)")

	return cmd
}
