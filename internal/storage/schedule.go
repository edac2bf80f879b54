package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
)

// UpsertScheduleEntries writes schedule entries keyed by their natural key
// (obligation_id, month, year). Existing rows only have their expected
// amount refreshed: regeneration never duplicates a period or clobbers a
// recorded payment.
func (s *queries) UpsertScheduleEntries(ctx context.Context, entries []model.ScheduleEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	for i := range entries {
		entry := &entries[i]
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("schedule entry for %s %s %d: %w", entry.ObligationID, entry.Month, entry.Year, err)
		}

		_, err := s.q.ExecContext(ctx, `
			INSERT INTO payment_schedule (obligation_id, obligation_type, month, year, expected_amount, amount_paid, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (obligation_id, month, year)
			DO UPDATE SET expected_amount = excluded.expected_amount
		`, entry.ObligationID, string(entry.ObligationType), monthValue(entry.Month), entry.Year,
			entry.ExpectedAmount, entry.AmountPaid, string(entry.Status))
		if err != nil {
			return fmt.Errorf("failed to upsert schedule entry: %w", err)
		}
	}
	return nil
}

// GetScheduleEntry retrieves a schedule entry by ID.
func (s *queries) GetScheduleEntry(ctx context.Context, id int64) (*model.ScheduleEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.q.QueryRowContext(ctx, `
		SELECT id, obligation_id, obligation_type, month, year, expected_amount,
			amount_paid, date_paid, account_id, status
		FROM payment_schedule WHERE id = ?
	`, id)

	entry, err := scanScheduleEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("schedule entry %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return entry, nil
}

// ListScheduleEntries returns every entry for a period.
func (s *queries) ListScheduleEntries(ctx context.Context, month time.Month, year int) ([]model.ScheduleEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, obligation_id, obligation_type, month, year, expected_amount,
			amount_paid, date_paid, account_id, status
		FROM payment_schedule WHERE month = ? AND year = ? ORDER BY obligation_id
	`, monthValue(month), year)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectScheduleEntries(rows)
}

// ListScheduleEntriesForObligation returns every entry for one obligation in
// chronological order.
func (s *queries) ListScheduleEntriesForObligation(ctx context.Context, obligationID string) ([]model.ScheduleEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(obligationID, "obligationID"); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, obligation_id, obligation_type, month, year, expected_amount,
			amount_paid, date_paid, account_id, status
		FROM payment_schedule WHERE obligation_id = ? ORDER BY year, id
	`, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectScheduleEntries(rows)
}

// UpdateScheduleEntryPayment records a payment state change on a schedule
// entry. The expected amount baseline is never touched here.
func (s *queries) UpdateScheduleEntryPayment(ctx context.Context, id int64, amountPaid float64, datePaid *time.Time, accountID *string, status model.PaymentStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var date, account any
	if datePaid != nil {
		date = *datePaid
	}
	if accountID != nil {
		account = *accountID
	}

	result, err := s.q.ExecContext(ctx, `
		UPDATE payment_schedule
		SET amount_paid = ?, date_paid = ?, account_id = ?, status = ?
		WHERE id = ?
	`, amountPaid, date, account, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update schedule entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule entry %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanScheduleEntry(row rowScanner) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	var month, obligationType, status string
	var datePaid sql.NullTime
	var accountID sql.NullString

	err := row.Scan(&entry.ID, &entry.ObligationID, &obligationType, &month, &entry.Year,
		&entry.ExpectedAmount, &entry.AmountPaid, &datePaid, &accountID, &status)
	if err != nil {
		return nil, err
	}

	entry.ObligationType = model.ObligationType(obligationType)
	entry.Status = model.PaymentStatus(status)
	entry.Month, err = scanMonth(month)
	if err != nil {
		return nil, fmt.Errorf("schedule month: %w", err)
	}
	if datePaid.Valid {
		entry.DatePaid = &datePaid.Time
	}
	if accountID.Valid {
		entry.AccountID = &accountID.String
	}
	return &entry, nil
}

func collectScheduleEntries(rows *sql.Rows) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	for rows.Next() {
		entry, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}
