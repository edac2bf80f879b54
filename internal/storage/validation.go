package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if strings.TrimSpace(txn.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.AccountID) == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	return nil
}

// mapConstraintErr converts sqlite unique violations into the portable
// duplicate sentinel so callers don't depend on driver error types.
func mapConstraintErr(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return common.ErrDuplicateEntry
		}
	}
	return err
}

// monthValue converts a month for storage as its full English name.
func monthValue(m time.Month) string {
	return model.MonthName(m)
}

// scanMonth converts a stored month name back to a time.Month.
func scanMonth(name string) (time.Month, error) {
	return model.ParseMonth(name)
}
