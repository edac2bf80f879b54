// Package service defines the storage contract and the payment and
// obligation services that orchestrate the computation core against it.
package service

import (
	"context"
	"time"

	"github.com/centavo-dev/centavo/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	AccountID string
	Limit     int
}

// Storage defines the contract for the persistence layer. The computation
// core never touches it; services fetch materialized collections and hand
// them to pure functions.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	UpdateAccountBalance(ctx context.Context, id string, balance float64) error

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// Biller operations
	CreateBiller(ctx context.Context, biller *model.Biller) error
	GetBiller(ctx context.Context, id string) (*model.Biller, error)
	ListBillers(ctx context.Context) ([]model.Biller, error)

	// Installment operations
	CreateInstallment(ctx context.Context, installment *model.Installment) error
	GetInstallment(ctx context.Context, id string) (*model.Installment, error)
	ListInstallments(ctx context.Context) ([]model.Installment, error)

	// Payment schedule operations
	UpsertScheduleEntries(ctx context.Context, entries []model.ScheduleEntry) error
	GetScheduleEntry(ctx context.Context, id int64) (*model.ScheduleEntry, error)
	ListScheduleEntries(ctx context.Context, month time.Month, year int) ([]model.ScheduleEntry, error)
	ListScheduleEntriesForObligation(ctx context.Context, obligationID string) ([]model.ScheduleEntry, error)
	UpdateScheduleEntryPayment(ctx context.Context, id int64, amountPaid float64, datePaid *time.Time, accountID *string, status model.PaymentStatus) error

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}
