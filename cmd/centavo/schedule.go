package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/reconcile"
)

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the monthly payment schedule",
		Long: `View the payment schedule for a budget period, record payments against
entries, and regenerate schedules after obligations change.`,
	}

	cmd.AddCommand(listScheduleCmd())
	cmd.AddCommand(payScheduleCmd())
	cmd.AddCommand(regenerateScheduleCmd())

	return cmd
}

func listScheduleCmd() *cobra.Command {
	var (
		monthFlag string
		yearFlag  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedule entries for a period",
		Long: `Show every schedule entry for a budget month. Pending and partial
entries past the month's end display as overdue; the stored status is
untouched.`,
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

			entries, err := store.ListScheduleEntries(ctx, month, year)
			if err != nil {
				return fmt.Errorf("failed to list schedule entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No schedule entries for %s %d.", month, year)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Payment schedule for %s %d", month, year)))

			matcher := reconcile.NewMatcher(matcherConfig())
			now := time.Now()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Entry"),
				cli.TableHeaderStyle.Render("Obligation"),
				cli.TableHeaderStyle.Render("Expected"),
				cli.TableHeaderStyle.Render("Paid"),
				cli.TableHeaderStyle.Render("Status"),
				cli.TableHeaderStyle.Render("Date Paid"))

			var expectedTotal, paidTotal float64
			for _, entry := range entries {
				status := matcher.Reclassify(entry.Status, entry.Month, entry.Year, now)
				datePaid := cli.SubtleStyle.Render("-")
				if entry.DatePaid != nil {
					datePaid = entry.DatePaid.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%d\t%s (%s)\t%s\t%s\t%s\t%s\n",
					entry.ID,
					entry.ObligationID,
					entry.ObligationType,
					cli.FormatAmount(entry.ExpectedAmount),
					cli.FormatAmount(entry.AmountPaid),
					cli.FormatStatus(status),
					datePaid)
				expectedTotal += entry.ExpectedAmount
				paidTotal += entry.AmountPaid
			}
			fmt.Fprintf(w, "\t%s\t%s\t%s\t\t\n",
				cli.BoldStyle.Render("Total"),
				cli.FormatAmount(expectedTotal),
				cli.FormatAmount(paidTotal))

			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "budget month (full name, default: current)")
	cmd.Flags().StringVar(&yearFlag, "year", "", "budget year (default: current)")

	return cmd
}

func payScheduleCmd() *cobra.Command {
	var (
		amount    float64
		accountID string
		dateFlag  string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "pay <entry-id>",
		Short: "Record a payment against a schedule entry",
		Long: `Record a payment. The schedule entry's paid amount and status and the
paying account's balance update together in one database transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			entryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry ID %q: %w", args[0], err)
			}

			date := time.Now()
			if dateFlag != "" {
				date, err = time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			payment := model.Transaction{
				Date:      date,
				Name:      name,
				AccountID: accountID,
				Amount:    amount,
			}
			if err := newPaymentService(store).RecordPayment(ctx, entryID, payment); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded payment of ₱%.2f against entry %d", amount, entryID)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "payment amount")
	cmd.Flags().StringVar(&accountID, "account", "", "paying account ID")
	cmd.Flags().StringVar(&dateFlag, "date", "", "payment date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&name, "name", "", "transaction description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func regenerateScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Regenerate schedules for every obligation",
		Long: `Re-expand every biller and installment into schedule entries. Running
this repeatedly is safe: entries are keyed by obligation and period, so
unchanged obligations produce no duplicates and recorded payments are
preserved.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var bar *progressbar.ProgressBar
			written, err := newObligationService(store).RegenerateSchedules(ctx, func(done, total int) {
				if bar == nil {
					bar = progressbar.Default(int64(total), "Regenerating schedules")
				}
				_ = bar.Set(done)
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Regenerated %d schedule entries", written)))
			return nil
		},
	}
}
