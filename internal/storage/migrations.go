package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS accounts (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('Debit', 'Credit')),
					balance REAL NOT NULL DEFAULT 0,
					credit_limit REAL,
					billing_date TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT UNIQUE NOT NULL,
					name TEXT NOT NULL,
					date DATETIME NOT NULL,
					amount REAL NOT NULL,
					account_id TEXT NOT NULL REFERENCES accounts(id),
					schedule_entry_id INTEGER,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_account ON transactions(account_id)`,

				`CREATE TABLE IF NOT EXISTS billers (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					category TEXT NOT NULL,
					expected_amount REAL NOT NULL DEFAULT 0,
					timing INTEGER NOT NULL DEFAULT 1,
					activation_month TEXT NOT NULL,
					activation_year INTEGER NOT NULL,
					deactivation_month TEXT,
					deactivation_year INTEGER,
					linked_account_id TEXT REFERENCES accounts(id),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS installments (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					total_amount REAL NOT NULL,
					monthly_amount REAL NOT NULL,
					term_months INTEGER NOT NULL,
					start_month TEXT NOT NULL,
					start_year INTEGER NOT NULL,
					account_id TEXT NOT NULL REFERENCES accounts(id),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS payment_schedule (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					obligation_id TEXT NOT NULL,
					obligation_type TEXT NOT NULL CHECK (obligation_type IN ('biller', 'installment')),
					month TEXT NOT NULL,
					year INTEGER NOT NULL,
					expected_amount REAL NOT NULL DEFAULT 0,
					amount_paid REAL NOT NULL DEFAULT 0,
					date_paid DATETIME,
					account_id TEXT,
					status TEXT NOT NULL DEFAULT 'pending',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE (obligation_id, month, year)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index payment schedule by period",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_schedule_period ON payment_schedule(month, year)`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Index transactions by schedule entry for reversals",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_transactions_entry ON transactions(schedule_entry_id)`)
			return err
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
