package model

import (
	"fmt"
	"strings"
	"time"
)

// PaymentStatus is the derived state of one schedule entry.
type PaymentStatus string

// Payment statuses. Overdue is a time-dependent reclassification of pending
// or partial entries; it is recomputed against the current date and never
// persisted as truth.
const (
	StatusPending PaymentStatus = "pending"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
	StatusOverdue PaymentStatus = "overdue"
)

// ScheduleEntry is one period's expected-vs-actual payment record for an
// obligation. Exactly one entry exists per (obligation, month, year); the
// expected-amount baseline survives every payment mutation.
type ScheduleEntry struct {
	DatePaid       *time.Time
	AccountID      *string // account the payment came from, once paid
	ObligationID   string
	ObligationType ObligationType
	Status         PaymentStatus
	Month          time.Month
	Year           int
	ID             int64
	ExpectedAmount float64
	AmountPaid     float64
}

// Period returns the entry's budget period.
func (e *ScheduleEntry) Period() MonthYear {
	return MonthYear{Month: e.Month, Year: e.Year}
}

// Validate ensures the entry has valid data.
func (e *ScheduleEntry) Validate() error {
	if strings.TrimSpace(e.ObligationID) == "" {
		return fmt.Errorf("obligation ID is required")
	}
	if e.ObligationType != ObligationBiller && e.ObligationType != ObligationInstallment {
		return fmt.Errorf("unknown obligation type %q", e.ObligationType)
	}
	if e.Month < time.January || e.Month > time.December {
		return fmt.Errorf("month is invalid")
	}
	if e.Year < 1900 || e.Year > 3000 {
		return fmt.Errorf("year %d is out of range", e.Year)
	}
	if e.ExpectedAmount < 0 {
		return fmt.Errorf("expected amount cannot be negative")
	}
	if e.AmountPaid < 0 {
		return fmt.Errorf("amount paid cannot be negative")
	}
	return nil
}
