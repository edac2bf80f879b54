package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/schedule"
)

// ObligationService creates billers and installments together with their
// payment schedules, and keeps schedules regenerable without duplication.
type ObligationService struct {
	store   Storage
	horizon int
}

// NewObligationService creates an obligation service. A non-positive
// horizon falls back to schedule.DefaultHorizonMonths.
func NewObligationService(store Storage, horizonMonths int) *ObligationService {
	if horizonMonths <= 0 {
		horizonMonths = schedule.DefaultHorizonMonths
	}
	return &ObligationService{store: store, horizon: horizonMonths}
}

// CreateBiller validates and stores a biller, then generates its payment
// schedule for the active window.
func (s *ObligationService) CreateBiller(ctx context.Context, biller *model.Biller) error {
	if biller.ID == "" {
		biller.ID = uuid.NewString()
	}
	if err := biller.Validate(); err != nil {
		return fmt.Errorf("invalid biller: %w", err)
	}

	if err := s.store.CreateBiller(ctx, biller); err != nil {
		return fmt.Errorf("failed to create biller: %w", err)
	}

	entries := schedule.ForBiller(biller, s.horizon)
	if err := s.store.UpsertScheduleEntries(ctx, entries); err != nil {
		return fmt.Errorf("failed to create payment schedule: %w", err)
	}

	slog.Info("Created biller", "biller", biller.Name, "schedule_entries", len(entries))
	return nil
}

// CreateInstallment validates and stores an installment, then generates one
// schedule entry per month of its term.
func (s *ObligationService) CreateInstallment(ctx context.Context, inst *model.Installment) error {
	if inst.ID == "" {
		inst.ID = uuid.NewString()
	}
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("invalid installment: %w", err)
	}

	if err := s.store.CreateInstallment(ctx, inst); err != nil {
		return fmt.Errorf("failed to create installment: %w", err)
	}

	entries := schedule.ForInstallment(inst)
	if err := s.store.UpsertScheduleEntries(ctx, entries); err != nil {
		return fmt.Errorf("failed to create payment schedule: %w", err)
	}

	slog.Info("Created installment", "installment", inst.Name, "schedule_entries", len(entries))
	return nil
}

// RegenerateSchedules re-expands every obligation and upserts the results.
// Upserting by (obligation, month, year) makes this idempotent: unchanged
// parameters never produce duplicate entries or clobber recorded payments.
// Returns how many entries were written.
func (s *ObligationService) RegenerateSchedules(ctx context.Context, progress func(done, total int)) (int, error) {
	billers, err := s.store.ListBillers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list billers: %w", err)
	}
	installments, err := s.store.ListInstallments(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list installments: %w", err)
	}

	total := len(billers) + len(installments)
	done := 0
	written := 0

	for i := range billers {
		entries := schedule.ForBiller(&billers[i], s.horizon)
		if err := s.store.UpsertScheduleEntries(ctx, entries); err != nil {
			return written, fmt.Errorf("failed to regenerate schedule for biller %s: %w", billers[i].ID, err)
		}
		written += len(entries)
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	for i := range installments {
		entries := schedule.ForInstallment(&installments[i])
		if err := s.store.UpsertScheduleEntries(ctx, entries); err != nil {
			return written, fmt.Errorf("failed to regenerate schedule for installment %s: %w", installments[i].ID, err)
		}
		written += len(entries)
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	return written, nil
}
