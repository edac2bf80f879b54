// Package reconcile matches loosely specified monthly obligations against a
// pool of raw transactions and derives payment status.
package reconcile

import (
	"math"
	"strings"
	"time"

	"github.com/centavo-dev/centavo/internal/model"
)

// Config holds the matching heuristics. The defaults are tuned to observed
// billing data, not verified business rules, so they stay configurable.
type Config struct {
	// AmountTolerance is the maximum absolute difference between a
	// transaction amount and the expected amount, absorbing rounding.
	AmountTolerance float64
	// GraceDays extends the target month by this many days to tolerate late
	// postings, still attributed to the original period.
	GraceDays int
	// MinNameLength gates the substring name match to suppress trivial
	// false positives from very short names.
	MinNameLength int
}

// DefaultConfig returns the standard matching configuration.
func DefaultConfig() Config {
	return Config{
		AmountTolerance: 1.0,
		GraceDays:       7,
		MinNameLength:   3,
	}
}

// Result is the outcome of matching one obligation period against a
// transaction pool.
type Result struct {
	DatePaid     *time.Time
	Transactions []model.Transaction
	PaidAmount   float64
	Status       model.PaymentStatus
}

// Matcher finds the transactions that most plausibly satisfy an obligation
// for a period.
type Matcher struct {
	cfg Config
}

// NewMatcher creates a matcher with the given configuration.
func NewMatcher(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// Match scans the pool for transactions satisfying the obligation in the
// target period. A transaction matches when its name overlaps the
// obligation's, its amount is within tolerance of the expected amount, and
// its date falls in the target month, in December of the prior year for
// January targets, or within the grace window after the month's end.
func (m *Matcher) Match(obligationName string, expected float64, month time.Month, year int, pool []model.Transaction) Result {
	result := Result{Transactions: []model.Transaction{}}

	for _, txn := range pool {
		if !m.nameMatches(obligationName, txn.Name) {
			continue
		}
		if !m.amountMatches(txn.Amount, expected) {
			continue
		}
		if !m.dateMatches(txn.Date, month, year) {
			continue
		}

		result.Transactions = append(result.Transactions, txn)
		result.PaidAmount += txn.Amount
		if result.DatePaid == nil || txn.Date.After(*result.DatePaid) {
			d := txn.Date
			result.DatePaid = &d
		}
	}

	result.Status = m.StatusFor(result.PaidAmount, expected)
	return result
}

// StatusFor derives a payment status from paid vs expected amounts:
// pending at zero, paid at or above the expected amount within tolerance,
// partial in between.
func (m *Matcher) StatusFor(paid, expected float64) model.PaymentStatus {
	switch {
	case paid <= 0:
		return model.StatusPending
	case paid+m.cfg.AmountTolerance >= expected:
		return model.StatusPaid
	default:
		return model.StatusPartial
	}
}

// Reclassify applies the time-dependent overdue rule: a pending or partial
// entry becomes overdue once now is past the period's implied due day (the
// last day of the target month). The result is for display only and is
// never stored.
func (m *Matcher) Reclassify(status model.PaymentStatus, month time.Month, year int, now time.Time) model.PaymentStatus {
	if status != model.StatusPending && status != model.StatusPartial {
		return status
	}
	if dayOf(now).After(endOfMonth(month, year)) {
		return model.StatusOverdue
	}
	return status
}

// nameMatches applies case-insensitive substring containment in either
// direction, requiring both names to carry at least MinNameLength
// characters.
func (m *Matcher) nameMatches(obligation, transaction string) bool {
	a := strings.ToLower(strings.TrimSpace(obligation))
	b := strings.ToLower(strings.TrimSpace(transaction))
	if len(a) < m.cfg.MinNameLength || len(b) < m.cfg.MinNameLength {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func (m *Matcher) amountMatches(amount, expected float64) bool {
	return math.Abs(amount-expected) <= m.cfg.AmountTolerance
}

// dateMatches accepts dates in the target month, December of the prior year
// when the target is January (year-end bills settled in the new year), or
// the grace window just past the month's end.
func (m *Matcher) dateMatches(d time.Time, month time.Month, year int) bool {
	if d.Month() == month && d.Year() == year {
		return true
	}
	if month == time.January && d.Month() == time.December && d.Year() == year-1 {
		return true
	}

	// Grace comparison runs at calendar-day precision so a payment posted
	// mid-day on the final grace day still counts.
	day := dayOf(d)
	end := endOfMonth(month, year)
	return day.After(end) && !day.After(end.AddDate(0, 0, m.cfg.GraceDays))
}

// endOfMonth returns the last day of the given month at midnight UTC.
func endOfMonth(month time.Month, year int) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// dayOf truncates an instant to its calendar day at midnight UTC.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
