package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/service"
)

// SaveTransactions stores transactions, ignoring content-hash duplicates so
// re-imports are safe.
func (s *queries) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	for _, txn := range transactions {
		hash := txn.Hash
		if hash == "" {
			hash = txn.GenerateHash()
		}
		var entryID any
		if txn.ScheduleEntryID != nil {
			entryID = *txn.ScheduleEntryID
		}

		_, err := s.q.ExecContext(ctx, `
			INSERT OR IGNORE INTO transactions (id, hash, name, date, amount, account_id, schedule_entry_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, txn.ID, hash, txn.Name, txn.Date, txn.Amount, txn.AccountID, entryID)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}
	return nil
}

// GetTransaction retrieves a transaction by ID.
func (s *queries) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.q.QueryRowContext(ctx, `
		SELECT id, hash, name, date, amount, account_id, schedule_entry_id
		FROM transactions WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// GetTransactionsByAccount returns every transaction on an account, oldest
// first.
func (s *queries) GetTransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, hash, name, date, amount, account_id, schedule_entry_id
		FROM transactions WHERE account_id = ? ORDER BY date
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTransactions(rows)
}

// ListTransactions returns transactions matching the filter, oldest first.
func (s *queries) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, hash, name, date, amount, account_id, schedule_entry_id FROM transactions`
	var conds []string
	var args []any

	if filter.AccountID != "" {
		conds = append(conds, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if filter.StartDate != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTransactions(rows)
}

// DeleteTransaction removes a transaction. Callers that need the schedule
// and balance effects unwound go through service.PaymentService instead.
func (s *queries) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var entryID sql.NullInt64

	err := row.Scan(&txn.ID, &txn.Hash, &txn.Name, &txn.Date, &txn.Amount, &txn.AccountID, &entryID)
	if err != nil {
		return nil, err
	}
	if entryID.Valid {
		txn.ScheduleEntryID = &entryID.Int64
	}
	return &txn, nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}
