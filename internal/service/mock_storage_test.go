package service

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
)

// mockStorage is an in-memory Storage for service tests. BeginTx snapshots
// the maps so Rollback restores the pre-transaction state.
type mockStorage struct {
	accounts     map[string]model.Account
	transactions map[string]model.Transaction
	billers      map[string]model.Biller
	installments map[string]model.Installment
	entries      map[int64]model.ScheduleEntry
	nextEntryID  int64

	failOn map[string]error // method name -> forced error
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		accounts:     make(map[string]model.Account),
		transactions: make(map[string]model.Transaction),
		billers:      make(map[string]model.Biller),
		installments: make(map[string]model.Installment),
		entries:      make(map[int64]model.ScheduleEntry),
		nextEntryID:  1,
		failOn:       make(map[string]error),
	}
}

func (m *mockStorage) fail(method string) error {
	if err, ok := m.failOn[method]; ok {
		return err
	}
	return nil
}

func (m *mockStorage) CreateAccount(_ context.Context, account *model.Account) error {
	m.accounts[account.ID] = *account
	return nil
}

func (m *mockStorage) GetAccount(_ context.Context, id string) (*model.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, common.ErrNotFound)
	}
	return &a, nil
}

func (m *mockStorage) ListAccounts(_ context.Context) ([]model.Account, error) {
	out := make([]model.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockStorage) UpdateAccountBalance(_ context.Context, id string, balance float64) error {
	if err := m.fail("UpdateAccountBalance"); err != nil {
		return err
	}
	a, ok := m.accounts[id]
	if !ok {
		return common.ErrNotFound
	}
	a.Balance = balance
	m.accounts[id] = a
	return nil
}

func (m *mockStorage) SaveTransactions(_ context.Context, transactions []model.Transaction) error {
	for _, t := range transactions {
		m.transactions[t.ID] = t
	}
	return nil
}

func (m *mockStorage) GetTransaction(_ context.Context, id string) (*model.Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return &t, nil
}

func (m *mockStorage) GetTransactionsByAccount(_ context.Context, accountID string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range m.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStorage) ListTransactions(_ context.Context, _ TransactionFilter) ([]model.Transaction, error) {
	out := make([]model.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockStorage) DeleteTransaction(_ context.Context, id string) error {
	delete(m.transactions, id)
	return nil
}

func (m *mockStorage) CreateBiller(_ context.Context, biller *model.Biller) error {
	m.billers[biller.ID] = *biller
	return nil
}

func (m *mockStorage) GetBiller(_ context.Context, id string) (*model.Biller, error) {
	b, ok := m.billers[id]
	if !ok {
		return nil, fmt.Errorf("biller %s: %w", id, common.ErrNotFound)
	}
	return &b, nil
}

func (m *mockStorage) ListBillers(_ context.Context) ([]model.Biller, error) {
	out := make([]model.Biller, 0, len(m.billers))
	for _, b := range m.billers {
		out = append(out, b)
	}
	return out, nil
}

func (m *mockStorage) CreateInstallment(_ context.Context, inst *model.Installment) error {
	m.installments[inst.ID] = *inst
	return nil
}

func (m *mockStorage) GetInstallment(_ context.Context, id string) (*model.Installment, error) {
	i, ok := m.installments[id]
	if !ok {
		return nil, fmt.Errorf("installment %s: %w", id, common.ErrNotFound)
	}
	return &i, nil
}

func (m *mockStorage) ListInstallments(_ context.Context) ([]model.Installment, error) {
	out := make([]model.Installment, 0, len(m.installments))
	for _, i := range m.installments {
		out = append(out, i)
	}
	return out, nil
}

func (m *mockStorage) UpsertScheduleEntries(_ context.Context, entries []model.ScheduleEntry) error {
	for _, e := range entries {
		if existing := m.findEntry(e.ObligationID, e.Month, e.Year); existing != nil {
			existing.ExpectedAmount = e.ExpectedAmount
			m.entries[existing.ID] = *existing
			continue
		}
		e.ID = m.nextEntryID
		m.nextEntryID++
		m.entries[e.ID] = e
	}
	return nil
}

func (m *mockStorage) findEntry(obligationID string, month time.Month, year int) *model.ScheduleEntry {
	for _, e := range m.entries {
		if e.ObligationID == obligationID && e.Month == month && e.Year == year {
			found := e
			return &found
		}
	}
	return nil
}

func (m *mockStorage) GetScheduleEntry(_ context.Context, id int64) (*model.ScheduleEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("schedule entry %d: %w", id, common.ErrNotFound)
	}
	return &e, nil
}

func (m *mockStorage) ListScheduleEntries(_ context.Context, month time.Month, year int) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.Month == month && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStorage) ListScheduleEntriesForObligation(_ context.Context, obligationID string) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.ObligationID == obligationID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStorage) UpdateScheduleEntryPayment(_ context.Context, id int64, amountPaid float64, datePaid *time.Time, accountID *string, status model.PaymentStatus) error {
	if err := m.fail("UpdateScheduleEntryPayment"); err != nil {
		return err
	}
	e, ok := m.entries[id]
	if !ok {
		return common.ErrNotFound
	}
	e.AmountPaid = amountPaid
	e.DatePaid = datePaid
	e.AccountID = accountID
	e.Status = status
	m.entries[id] = e
	return nil
}

func (m *mockStorage) Migrate(_ context.Context) error { return nil }

func (m *mockStorage) Close() error { return nil }

func (m *mockStorage) BeginTx(_ context.Context) (Transaction, error) {
	return &mockTx{mockStorage: m, store: m, snapshot: m.snapshot()}, nil
}

func (m *mockStorage) snapshot() *mockStorage {
	s := newMockStorage()
	s.nextEntryID = m.nextEntryID
	for k, v := range m.accounts {
		s.accounts[k] = v
	}
	for k, v := range m.transactions {
		s.transactions[k] = v
	}
	for k, v := range m.billers {
		s.billers[k] = v
	}
	for k, v := range m.installments {
		s.installments[k] = v
	}
	for k, v := range m.entries {
		s.entries[k] = v
	}
	return s
}

func (m *mockStorage) restore(s *mockStorage) {
	m.accounts = s.accounts
	m.transactions = s.transactions
	m.billers = s.billers
	m.installments = s.installments
	m.entries = s.entries
	m.nextEntryID = s.nextEntryID
}

// mockTx applies writes directly to the backing store; Rollback restores the
// snapshot taken at BeginTx.
type mockTx struct {
	*mockStorage
	store    *mockStorage
	snapshot *mockStorage
}

func (t *mockTx) Commit() error { return nil }

func (t *mockTx) Rollback() error {
	t.store.restore(t.snapshot)
	return nil
}
