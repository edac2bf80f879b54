package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
)

// CreateAccount inserts a new account.
func (s *queries) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if err := account.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidAccount, err)
	}

	var billingDate, creditLimit any
	if account.BillingDate != "" {
		billingDate = account.BillingDate
	}
	if account.CreditLimit != nil {
		creditLimit = *account.CreditLimit
	}

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, balance, credit_limit, billing_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, account.ID, account.Name, string(account.Type), account.Balance, creditLimit, billingDate)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", mapConstraintErr(err))
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (s *queries) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, type, balance, credit_limit, billing_date, created_at
		FROM accounts WHERE id = ?
	`, id)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *queries) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, type, balance, credit_limit, billing_date, created_at
		FROM accounts ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account: %w", scanErr)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// UpdateAccountBalance sets an account's balance.
func (s *queries) UpdateAccountBalance(ctx context.Context, id string, balance float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.q.ExecContext(ctx, `UPDATE accounts SET balance = ? WHERE id = ?`, balance, id)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var account model.Account
	var accountType string
	var creditLimit sql.NullFloat64
	var billingDate sql.NullString

	err := row.Scan(&account.ID, &account.Name, &accountType, &account.Balance,
		&creditLimit, &billingDate, &account.CreatedAt)
	if err != nil {
		return nil, err
	}

	account.Type = model.AccountType(accountType)
	if creditLimit.Valid {
		account.CreditLimit = &creditLimit.Float64
	}
	if billingDate.Valid {
		account.BillingDate = billingDate.String
	}
	return &account, nil
}
