package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/model"
)

func billersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billers",
		Short: "Manage recurring billers",
		Long: `List and add recurring monthly obligations. Adding a biller generates
its payment schedule from the activation period through the planning
horizon, or through the deactivation period when one is set.`,
	}

	cmd.AddCommand(listBillersCmd())
	cmd.AddCommand(addBillerCmd())

	return cmd
}

func listBillersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all billers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			billers, err := store.ListBillers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list billers: %w", err)
			}

			if len(billers) == 0 {
				fmt.Println(cli.InfoStyle.Render("No billers found. Use 'centavo billers add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Expected"),
				cli.TableHeaderStyle.Render("Timing"),
				cli.TableHeaderStyle.Render("Active From"),
				cli.TableHeaderStyle.Render("Until"))

			for _, b := range billers {
				until := cli.SubtleStyle.Render("-")
				if b.Deactivation != nil {
					until = b.Deactivation.String()
				}
				expected := cli.FormatAmount(b.ExpectedAmount)
				if b.UsesLinkedAccount() {
					expected = cli.InfoStyle.Render("cycle total")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					b.Name, b.Category, expected, b.Timing, b.Activation.String(), until)
			}

			return nil
		},
	}
}

func addBillerCmd() *cobra.Command {
	var (
		category        string
		expectedAmount  float64
		timing          int
		activationMonth string
		activationYear  string
		deactMonth      string
		deactYear       string
		linkedAccountID string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new biller",
		Long: `Create a recurring biller. Billers in the Loans category may link a
credit account; their expected amount is then derived from the linked
account's billing-cycle total each period instead of the flat figure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			activation, err := parseMonthYear(activationMonth, activationYear)
			if err != nil {
				return fmt.Errorf("invalid activation: %w", err)
			}

			biller := &model.Biller{
				Name:           args[0],
				Category:       category,
				ExpectedAmount: expectedAmount,
				Timing:         timing,
				Activation:     activation,
			}
			if deactMonth != "" || deactYear != "" {
				deactivation, err := parseMonthYear(deactMonth, deactYear)
				if err != nil {
					return fmt.Errorf("invalid deactivation: %w", err)
				}
				biller.Deactivation = &deactivation
			}
			if linkedAccountID != "" {
				biller.LinkedAccountID = &linkedAccountID
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := newObligationService(store).CreateBiller(ctx, biller); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created biller %q (ID: %s)", biller.Name, biller.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "biller category (e.g. Utilities, Loans)")
	cmd.Flags().Float64Var(&expectedAmount, "amount", 0, "expected monthly amount")
	cmd.Flags().IntVar(&timing, "timing", model.TimingFirstHalf, "payment timing: 1 (first half) or 2 (second half)")
	cmd.Flags().StringVar(&activationMonth, "from-month", "", "activation month (full name, e.g. January)")
	cmd.Flags().StringVar(&activationYear, "from-year", "", "activation year")
	cmd.Flags().StringVar(&deactMonth, "until-month", "", "deactivation month")
	cmd.Flags().StringVar(&deactYear, "until-year", "", "deactivation year")
	cmd.Flags().StringVar(&linkedAccountID, "linked-account", "", "credit account whose cycle total drives the expected amount (Loans only)")
	_ = cmd.MarkFlagRequired("from-month")
	_ = cmd.MarkFlagRequired("from-year")

	return cmd
}
