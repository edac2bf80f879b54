package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/cycle"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/reconcile"
)

// PaymentService records and reverses payments against schedule entries,
// keeping the schedule and the owning account balance in step.
type PaymentService struct {
	store   Storage
	matcher *reconcile.Matcher
}

// NewPaymentService creates a payment service.
func NewPaymentService(store Storage, matcher *reconcile.Matcher) *PaymentService {
	return &PaymentService{store: store, matcher: matcher}
}

// ExpectedAmount resolves a biller's expected amount for a period. Loan
// billers linked to a qualifying credit account get the live cycle total of
// whichever cycle closes in the period; everything else, and every failure
// along the linked-account chain, falls back to the flat stored figure.
func (s *PaymentService) ExpectedAmount(ctx context.Context, biller *model.Biller, month time.Month, year int) float64 {
	if !biller.UsesLinkedAccount() {
		return biller.ExpectedAmount
	}

	account, err := s.store.GetAccount(ctx, *biller.LinkedAccountID)
	if err != nil || !account.HasBillingAnchor() {
		return biller.ExpectedAmount
	}

	anchor, err := model.ParseAnchor(account.BillingDate)
	if err != nil {
		slog.Debug("Linked account has unparseable billing date, using flat amount",
			"biller", biller.Name, "account", account.ID, "error", err)
		return biller.ExpectedAmount
	}

	c, ok := cycle.Resolve(month, year, anchor.Day)
	if !ok {
		return biller.ExpectedAmount
	}

	txns, err := s.store.GetTransactionsByAccount(ctx, account.ID)
	if err != nil {
		return biller.ExpectedAmount
	}

	buckets := cycle.Aggregate([]model.Cycle{c}, txns)
	return buckets[0].Total
}

// RecordPayment stores a payment transaction against a schedule entry and
// applies its balance effect on the paying account as one storage
// transaction: debit accounts spend the amount, credit accounts accumulate
// it as usage. Either both writes land or neither does; a failed rollback
// after a partial write surfaces common.ErrInconsistentState.
func (s *PaymentService) RecordPayment(ctx context.Context, entryID int64, payment model.Transaction) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.recordPaymentTx(ctx, tx, entryID, payment); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: payment update failed (%v) and rollback failed (%v)",
				common.ErrInconsistentState, err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment: %w", err)
	}
	return nil
}

func (s *PaymentService) recordPaymentTx(ctx context.Context, tx Transaction, entryID int64, payment model.Transaction) error {
	entry, err := tx.GetScheduleEntry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to load schedule entry %d: %w", entryID, err)
	}

	account, err := tx.GetAccount(ctx, payment.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load account %s: %w", payment.AccountID, err)
	}

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	payment.ScheduleEntryID = &entry.ID
	if payment.Hash == "" {
		payment.Hash = payment.GenerateHash()
	}
	if err := tx.SaveTransactions(ctx, []model.Transaction{payment}); err != nil {
		return fmt.Errorf("failed to save payment transaction: %w", err)
	}

	paid := entry.AmountPaid + payment.Amount
	status := s.matcher.StatusFor(paid, entry.ExpectedAmount)
	datePaid := payment.Date
	if err := tx.UpdateScheduleEntryPayment(ctx, entry.ID, paid, &datePaid, &account.ID, status); err != nil {
		return fmt.Errorf("failed to update schedule entry: %w", err)
	}

	balance := account.Balance
	switch account.Type {
	case model.AccountTypeDebit:
		balance -= payment.Amount
	case model.AccountTypeCredit:
		balance += payment.Amount
	}
	if err := tx.UpdateAccountBalance(ctx, account.ID, balance); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	slog.Info("Recorded payment",
		"entry", entry.ID,
		"obligation", entry.ObligationID,
		"amount", payment.Amount,
		"status", status)
	return nil
}

// ReversePayment deletes a transaction and unwinds every effect it caused:
// the matched schedule entry's paid amount and status, and the account
// balance. Paid amount reaching zero clears the payment date and account.
func (s *PaymentService) ReversePayment(ctx context.Context, transactionID string) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.reversePaymentTx(ctx, tx, transactionID); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: reversal failed (%v) and rollback failed (%v)",
				common.ErrInconsistentState, err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reversal: %w", err)
	}
	return nil
}

func (s *PaymentService) reversePaymentTx(ctx context.Context, tx Transaction, transactionID string) error {
	txn, err := tx.GetTransaction(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}

	if txn.ScheduleEntryID != nil {
		entry, err := tx.GetScheduleEntry(ctx, *txn.ScheduleEntryID)
		if err != nil {
			return fmt.Errorf("failed to load schedule entry %d: %w", *txn.ScheduleEntryID, err)
		}

		paid := entry.AmountPaid - txn.Amount
		if paid < 0 {
			paid = 0
		}
		status := s.matcher.StatusFor(paid, entry.ExpectedAmount)

		datePaid := entry.DatePaid
		accountID := entry.AccountID
		if paid == 0 {
			datePaid = nil
			accountID = nil
		}
		if err := tx.UpdateScheduleEntryPayment(ctx, entry.ID, paid, datePaid, accountID, status); err != nil {
			return fmt.Errorf("failed to update schedule entry: %w", err)
		}
	}

	account, err := tx.GetAccount(ctx, txn.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load account %s: %w", txn.AccountID, err)
	}

	balance := account.Balance
	switch account.Type {
	case model.AccountTypeDebit:
		balance += txn.Amount
	case model.AccountTypeCredit:
		balance -= txn.Amount
	}
	if err := tx.UpdateAccountBalance(ctx, account.ID, balance); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	if err := tx.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	slog.Info("Reversed payment", "transaction", transactionID, "amount", txn.Amount)
	return nil
}

// ReconciledEntry pairs a schedule entry with the match result derived for
// its period.
type ReconciledEntry struct {
	Entry          model.ScheduleEntry
	ObligationName string
	Match          reconcile.Result
	ExpectedAmount float64
	Status         model.PaymentStatus
}

// ReconcilePeriod runs the matcher for every schedule entry of a period
// against the full transaction pool and derives display statuses, including
// the time-dependent overdue reclassification. Nothing is persisted; the
// caller decides whether to record any of the matches.
func (s *PaymentService) ReconcilePeriod(ctx context.Context, month time.Month, year int, now time.Time) ([]ReconciledEntry, error) {
	entries, err := s.store.ListScheduleEntries(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	pool, err := s.store.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Transactions already recorded against a schedule entry are counted in
	// that entry's AmountPaid; offering them to the matcher again would
	// double-count them.
	candidates := make([]model.Transaction, 0, len(pool))
	for _, txn := range pool {
		if txn.ScheduleEntryID == nil {
			candidates = append(candidates, txn)
		}
	}

	results := make([]ReconciledEntry, 0, len(entries))
	for _, entry := range entries {
		name, expected := s.obligationContext(ctx, &entry, month, year)

		match := s.matcher.Match(name, expected, month, year, candidates)
		status := s.matcher.StatusFor(entry.AmountPaid+match.PaidAmount, expected)
		status = s.matcher.Reclassify(status, month, year, now)

		results = append(results, ReconciledEntry{
			Entry:          entry,
			ObligationName: name,
			Match:          match,
			ExpectedAmount: expected,
			Status:         status,
		})
	}
	return results, nil
}

// obligationContext resolves the display name and expected amount behind a
// schedule entry. Missing obligations degrade to the entry's own baseline.
func (s *PaymentService) obligationContext(ctx context.Context, entry *model.ScheduleEntry, month time.Month, year int) (string, float64) {
	switch entry.ObligationType {
	case model.ObligationBiller:
		biller, err := s.store.GetBiller(ctx, entry.ObligationID)
		if err != nil {
			return entry.ObligationID, entry.ExpectedAmount
		}
		return biller.Name, s.ExpectedAmount(ctx, biller, month, year)
	case model.ObligationInstallment:
		inst, err := s.store.GetInstallment(ctx, entry.ObligationID)
		if err != nil {
			return entry.ObligationID, entry.ExpectedAmount
		}
		return inst.Name, inst.MonthlyAmount
	default:
		return entry.ObligationID, entry.ExpectedAmount
	}
}
