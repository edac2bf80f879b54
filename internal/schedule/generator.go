// Package schedule expands recurring obligations into per-period payment
// schedule entries.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
)

// DefaultHorizonMonths bounds how far ahead biller schedules are generated
// when the biller has no deactivation period.
const DefaultHorizonMonths = 12

var termDigits = regexp.MustCompile(`-?\d+`)

// ParseTermMonths parses an installment term from loosely typed input:
// either a bare integer or a string like "12 months". Non-positive or
// non-numeric terms are an error; callers log and generate no entries.
func ParseTermMonths(raw string) (int, error) {
	digits := termDigits.FindString(raw)
	if digits == "" {
		return 0, fmt.Errorf("%w: no month count in %q", common.ErrInvalidTerm, raw)
	}
	months, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable term %q: %v", common.ErrInvalidTerm, raw, err)
	}
	if months <= 0 {
		return 0, fmt.Errorf("%w: term must be positive, got %d", common.ErrInvalidTerm, months)
	}
	return months, nil
}

// ForBiller expands a biller into one pending entry per period, starting at
// its activation month and stopping at horizonMonths entries or at the
// deactivation period (inclusive), whichever comes first. Entries carry the
// biller's flat expected amount; linked-account billers get their live
// amount at reconciliation time instead.
func ForBiller(b *model.Biller, horizonMonths int) []model.ScheduleEntry {
	if horizonMonths <= 0 {
		return nil
	}

	entries := make([]model.ScheduleEntry, 0, horizonMonths)
	period := b.Activation
	for i := 0; i < horizonMonths; i++ {
		entries = append(entries, model.ScheduleEntry{
			ObligationID:   b.ID,
			ObligationType: model.ObligationBiller,
			Month:          period.Month,
			Year:           period.Year,
			ExpectedAmount: b.ExpectedAmount,
			Status:         model.StatusPending,
		})
		if b.Deactivation != nil && !period.Before(*b.Deactivation) {
			break
		}
		period = period.Next()
	}
	return entries
}

// ForInstallment expands an installment into exactly TermMonths entries from
// its start period, each expecting the monthly amount.
func ForInstallment(inst *model.Installment) []model.ScheduleEntry {
	if inst.TermMonths <= 0 {
		return nil
	}

	entries := make([]model.ScheduleEntry, 0, inst.TermMonths)
	period := inst.Start
	for i := 0; i < inst.TermMonths; i++ {
		entries = append(entries, model.ScheduleEntry{
			ObligationID:   inst.ID,
			ObligationType: model.ObligationInstallment,
			Month:          period.Month,
			Year:           period.Year,
			ExpectedAmount: inst.MonthlyAmount,
			Status:         model.StatusPending,
		})
		period = period.Next()
	}
	return entries
}
