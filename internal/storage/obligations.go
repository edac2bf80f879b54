package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
)

// CreateBiller inserts a new biller.
func (s *queries) CreateBiller(ctx context.Context, biller *model.Biller) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if biller == nil {
		return fmt.Errorf("%w: biller", ErrNilParameter)
	}
	if err := biller.Validate(); err != nil {
		return fmt.Errorf("invalid biller: %w", err)
	}

	var deactMonth, deactYear, linked any
	if biller.Deactivation != nil {
		deactMonth = monthValue(biller.Deactivation.Month)
		deactYear = biller.Deactivation.Year
	}
	if biller.LinkedAccountID != nil {
		linked = *biller.LinkedAccountID
	}

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO billers (id, name, category, expected_amount, timing,
			activation_month, activation_year, deactivation_month, deactivation_year, linked_account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, biller.ID, biller.Name, biller.Category, biller.ExpectedAmount, biller.Timing,
		monthValue(biller.Activation.Month), biller.Activation.Year, deactMonth, deactYear, linked)
	if err != nil {
		return fmt.Errorf("failed to create biller: %w", mapConstraintErr(err))
	}
	return nil
}

// GetBiller retrieves a biller by ID.
func (s *queries) GetBiller(ctx context.Context, id string) (*model.Biller, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, category, expected_amount, timing,
			activation_month, activation_year, deactivation_month, deactivation_year,
			linked_account_id, created_at
		FROM billers WHERE id = ?
	`, id)

	biller, err := scanBiller(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("biller %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get biller: %w", err)
	}
	return biller, nil
}

// ListBillers returns all billers ordered by name.
func (s *queries) ListBillers(ctx context.Context) ([]model.Biller, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, category, expected_amount, timing,
			activation_month, activation_year, deactivation_month, deactivation_year,
			linked_account_id, created_at
		FROM billers ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list billers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var billers []model.Biller
	for rows.Next() {
		biller, scanErr := scanBiller(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan biller: %w", scanErr)
		}
		billers = append(billers, *biller)
	}
	return billers, rows.Err()
}

// CreateInstallment inserts a new installment.
func (s *queries) CreateInstallment(ctx context.Context, inst *model.Installment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if inst == nil {
		return fmt.Errorf("%w: installment", ErrNilParameter)
	}
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("invalid installment: %w", err)
	}

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO installments (id, name, total_amount, monthly_amount, term_months,
			start_month, start_year, account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, inst.ID, inst.Name, inst.TotalAmount, inst.MonthlyAmount, inst.TermMonths,
		monthValue(inst.Start.Month), inst.Start.Year, inst.AccountID)
	if err != nil {
		return fmt.Errorf("failed to create installment: %w", mapConstraintErr(err))
	}
	return nil
}

// GetInstallment retrieves an installment by ID.
func (s *queries) GetInstallment(ctx context.Context, id string) (*model.Installment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, total_amount, monthly_amount, term_months,
			start_month, start_year, account_id, created_at
		FROM installments WHERE id = ?
	`, id)

	inst, err := scanInstallment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("installment %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	return inst, nil
}

// ListInstallments returns all installments ordered by name.
func (s *queries) ListInstallments(ctx context.Context) ([]model.Installment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, total_amount, monthly_amount, term_months,
			start_month, start_year, account_id, created_at
		FROM installments ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var installments []model.Installment
	for rows.Next() {
		inst, scanErr := scanInstallment(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", scanErr)
		}
		installments = append(installments, *inst)
	}
	return installments, rows.Err()
}

func scanBiller(row rowScanner) (*model.Biller, error) {
	var biller model.Biller
	var activationMonth string
	var deactMonth sql.NullString
	var deactYear sql.NullInt64
	var linked sql.NullString

	err := row.Scan(&biller.ID, &biller.Name, &biller.Category, &biller.ExpectedAmount,
		&biller.Timing, &activationMonth, &biller.Activation.Year,
		&deactMonth, &deactYear, &linked, &biller.CreatedAt)
	if err != nil {
		return nil, err
	}

	biller.Activation.Month, err = scanMonth(activationMonth)
	if err != nil {
		return nil, fmt.Errorf("activation month: %w", err)
	}
	if deactMonth.Valid && deactYear.Valid {
		month, parseErr := scanMonth(deactMonth.String)
		if parseErr != nil {
			return nil, fmt.Errorf("deactivation month: %w", parseErr)
		}
		biller.Deactivation = &model.MonthYear{Month: month, Year: int(deactYear.Int64)}
	}
	if linked.Valid {
		biller.LinkedAccountID = &linked.String
	}
	return &biller, nil
}

func scanInstallment(row rowScanner) (*model.Installment, error) {
	var inst model.Installment
	var startMonth string

	err := row.Scan(&inst.ID, &inst.Name, &inst.TotalAmount, &inst.MonthlyAmount,
		&inst.TermMonths, &startMonth, &inst.Start.Year, &inst.AccountID, &inst.CreatedAt)
	if err != nil {
		return nil, err
	}

	inst.Start.Month, err = scanMonth(startMonth)
	if err != nil {
		return nil, fmt.Errorf("start month: %w", err)
	}
	return &inst, nil
}
