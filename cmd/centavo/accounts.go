package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage payment accounts",
		Long:  `List and add the bank accounts and credit cards payments are made from.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := store.ListAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts found. Use 'centavo accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Balance"),
				cli.TableHeaderStyle.Render("Billing Day"))

			for _, acct := range accounts {
				billing := acct.BillingDate
				if billing == "" {
					billing = cli.SubtleStyle.Render("-")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					acct.ID, acct.Name, acct.Type, cli.FormatAmount(acct.Balance), billing)
			}

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		accountType string
		billingDate string
		creditLimit float64
		balance     float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Long: `Create a payment account. Credit accounts can carry a billing date,
either a day of month ("13") or a full date ("2024-05-13"), which anchors
billing-cycle generation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			account := &model.Account{
				ID:          uuid.NewString(),
				Name:        args[0],
				Type:        model.AccountType(accountType),
				BillingDate: strings.TrimSpace(billingDate),
				Balance:     balance,
			}
			if cmd.Flags().Changed("credit-limit") {
				account.CreditLimit = &creditLimit
			}
			if err := account.Validate(); err != nil {
				return fmt.Errorf("invalid account: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateAccount(ctx, account); err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created account %q (ID: %s)", account.Name, account.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeDebit), "account type (Debit or Credit)")
	cmd.Flags().StringVar(&billingDate, "billing-date", "", "billing anchor for credit accounts")
	cmd.Flags().Float64Var(&creditLimit, "credit-limit", 0, "credit limit")
	cmd.Flags().Float64Var(&balance, "balance", 0, "opening balance")

	return cmd
}
