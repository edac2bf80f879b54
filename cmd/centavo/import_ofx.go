package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/centavo-dev/centavo/internal/cli"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/ofx"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <account-id> [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX statements exported from a bank into
an account. Duplicate transactions are skipped by content hash, so
re-importing an overlapping statement is safe.

Examples:
  # Import a single statement
  centavo import acct-123 ~/Downloads/statement_jan.qfx

  # Import everything in a directory
  centavo import acct-123 ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			accountID := args[0]

			// Expand globs and collect all files
			var allFiles []string
			for _, pattern := range args[1:] {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					// If no glob matches, check if it's a direct file
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}

			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if _, err := store.GetAccount(ctx, accountID); err != nil {
				return fmt.Errorf("failed to load account %s: %w", accountID, err)
			}

			slog.Info("💰 Importing OFX files...",
				"account", accountID,
				"file_count", len(allFiles),
				"dry_run", dryRun)

			parser := ofx.NewParser()
			seen := make(map[string]bool)
			var allTransactions []model.Transaction

			bar := progressbar.Default(int64(len(allFiles)), "Parsing statements")
			for _, filePath := range allFiles {
				f, err := os.Open(filePath)
				if err != nil {
					slog.Error("Failed to open file", "file", filePath, "error", err)
					_ = bar.Add(1)
					continue
				}

				transactions, err := parser.ParseFile(ctx, f, accountID)
				_ = f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
					_ = bar.Add(1)
					continue
				}

				added := 0
				for _, tx := range transactions {
					if !seen[tx.Hash] {
						seen[tx.Hash] = true
						allTransactions = append(allTransactions, tx)
						added++
					}
				}

				slog.Info("Processed file",
					"file", filepath.Base(filePath),
					"transactions_found", len(transactions),
					"added", added,
					"duplicates", len(transactions)-added)
				_ = bar.Add(1)
			}

			if len(allTransactions) == 0 {
				slog.Warn("No transactions found in any file")
				return nil
			}

			if dryRun {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(allTransactions))))
				return nil
			}

			if err := store.SaveTransactions(ctx, allTransactions); err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions into %s", len(allTransactions), accountID)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}
