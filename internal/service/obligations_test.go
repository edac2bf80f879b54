package service

import (
	"context"
	"testing"
	"time"

	"github.com/centavo-dev/centavo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBiller_GeneratesSchedule(t *testing.T) {
	store := newMockStorage()
	svc := NewObligationService(store, 6)
	ctx := context.Background()

	biller := &model.Biller{
		Name:           "Internet Plan",
		Category:       "Utilities",
		ExpectedAmount: 1699,
		Timing:         model.TimingFirstHalf,
		Activation:     model.MonthYear{Month: time.January, Year: 2026},
	}
	require.NoError(t, svc.CreateBiller(ctx, biller))
	assert.NotEmpty(t, biller.ID, "ID assigned on create")

	entries, err := store.ListScheduleEntriesForObligation(ctx, biller.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestCreateBiller_Invalid(t *testing.T) {
	store := newMockStorage()
	svc := NewObligationService(store, 6)

	err := svc.CreateBiller(context.Background(), &model.Biller{Name: ""})
	assert.Error(t, err)
	assert.Empty(t, store.entries)
}

func TestRegenerateSchedules_Idempotent(t *testing.T) {
	store := newMockStorage()
	svc := NewObligationService(store, 12)
	ctx := context.Background()

	inst := &model.Installment{
		Name:          "Laptop",
		TotalAmount:   60000,
		MonthlyAmount: 5000,
		TermMonths:    12,
		AccountID:     "acct1",
		Start:         model.MonthYear{Month: time.February, Year: 2026},
	}
	require.NoError(t, svc.CreateInstallment(ctx, inst))
	require.Len(t, store.entries, 12)

	// Simulate a recorded payment on one period.
	first, err := store.ListScheduleEntriesForObligation(ctx, inst.ID)
	require.NoError(t, err)
	paidDate := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	acct := "acct1"
	require.NoError(t, store.UpdateScheduleEntryPayment(ctx, first[0].ID, 5000, &paidDate, &acct, model.StatusPaid))

	// Regenerating with identical parameters neither duplicates entries nor
	// clobbers the recorded payment.
	written, err := svc.RegenerateSchedules(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, written)
	assert.Len(t, store.entries, 12, "one entry per (obligation, month, year)")

	entry, err := store.GetScheduleEntry(ctx, first[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, entry.AmountPaid, 0.001)
	assert.Equal(t, model.StatusPaid, entry.Status)
}
