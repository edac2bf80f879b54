package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/schedule"
)

func installmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "installments",
		Short: "Manage installment plans",
		Long: `List and add fixed-term installment plans. Adding a plan generates
exactly one schedule entry per month of the term.`,
	}

	cmd.AddCommand(listInstallmentsCmd())
	cmd.AddCommand(addInstallmentCmd())

	return cmd
}

func listInstallmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all installment plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			installments, err := store.ListInstallments(ctx)
			if err != nil {
				return fmt.Errorf("failed to list installments: %w", err)
			}

			if len(installments) == 0 {
				fmt.Println(cli.InfoStyle.Render("No installment plans found. Use 'centavo installments add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Monthly"),
				cli.TableHeaderStyle.Render("Total"),
				cli.TableHeaderStyle.Render("Term"),
				cli.TableHeaderStyle.Render("Starts"))

			for _, inst := range installments {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d months\t%s\n",
					inst.Name,
					cli.FormatAmount(inst.MonthlyAmount),
					cli.FormatAmount(inst.TotalAmount),
					inst.TermMonths,
					inst.Start.String())
			}

			return nil
		},
	}
}

func addInstallmentCmd() *cobra.Command {
	var (
		accountID     string
		totalAmount   float64
		monthlyAmount float64
		term          string
		startMonth    string
		startYear     string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new installment plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Terms arrive loosely formatted ("6", "6 months", "6mos").
			termMonths, err := schedule.ParseTermMonths(term)
			if err != nil {
				return fmt.Errorf("invalid term %q: %w", term, err)
			}

			start, err := parseMonthYear(startMonth, startYear)
			if err != nil {
				return fmt.Errorf("invalid start: %w", err)
			}

			monthly := monthlyAmount
			if monthly == 0 && termMonths > 0 {
				monthly = totalAmount / float64(termMonths)
			}

			inst := &model.Installment{
				Name:          args[0],
				AccountID:     accountID,
				TotalAmount:   totalAmount,
				MonthlyAmount: monthly,
				TermMonths:    termMonths,
				Start:         start,
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := newObligationService(store).CreateInstallment(ctx, inst); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created installment %q: %d payments of ₱%.2f", inst.Name, inst.TermMonths, inst.MonthlyAmount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account the plan is charged to")
	cmd.Flags().Float64Var(&totalAmount, "total", 0, "total amount of the plan")
	cmd.Flags().Float64Var(&monthlyAmount, "monthly", 0, "monthly amount (default: total / term)")
	cmd.Flags().StringVar(&term, "term", "", "term in months (e.g. \"6\" or \"6 months\")")
	cmd.Flags().StringVar(&startMonth, "start-month", "", "first payment month (full name)")
	cmd.Flags().StringVar(&startYear, "start-year", "", "first payment year")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("start-month")
	_ = cmd.MarkFlagRequired("start-year")

	return cmd
}
