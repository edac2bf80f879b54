package model

import (
	"fmt"
	"strings"
	"time"
)

// ObligationType distinguishes the two recurring payment sources.
type ObligationType string

// Obligation types.
const (
	ObligationBiller      ObligationType = "biller"
	ObligationInstallment ObligationType = "installment"
)

// CategoryLoans is the biller category whose linked-account rule redirects
// expected-amount computation to live cycle aggregation.
const CategoryLoans = "Loans"

// Biller timing values: first or second half of the month.
const (
	TimingFirstHalf  = 1
	TimingSecondHalf = 2
)

// MonthYear identifies one budget period.
type MonthYear struct {
	Month time.Month
	Year  int
}

// Next returns the period one calendar month later.
func (m MonthYear) Next() MonthYear {
	if m.Month == time.December {
		return MonthYear{Month: time.January, Year: m.Year + 1}
	}
	return MonthYear{Month: m.Month + 1, Year: m.Year}
}

// Before reports whether m is chronologically earlier than other.
func (m MonthYear) Before(other MonthYear) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m MonthYear) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Biller is a recurring monthly obligation with an expected amount and an
// active window bounded by activation and optional deactivation periods.
type Biller struct {
	CreatedAt       time.Time
	ID              string
	Name            string
	Category        string
	LinkedAccountID *string
	Deactivation    *MonthYear
	Activation      MonthYear
	ExpectedAmount  float64
	Timing          int
}

// UsesLinkedAccount reports whether this biller's expected amount should be
// derived from its linked credit account's cycle totals rather than the flat
// stored figure. The account itself still has to qualify; see
// service.PaymentService.ExpectedAmount.
func (b *Biller) UsesLinkedAccount() bool {
	return b.Category == CategoryLoans && b.LinkedAccountID != nil && *b.LinkedAccountID != ""
}

// Validate ensures the biller has valid data.
func (b *Biller) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("biller ID is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("biller name is required")
	}
	if b.ExpectedAmount < 0 {
		return fmt.Errorf("expected amount cannot be negative")
	}
	if b.Timing != TimingFirstHalf && b.Timing != TimingSecondHalf {
		return fmt.Errorf("timing must be %d or %d", TimingFirstHalf, TimingSecondHalf)
	}
	if b.Activation.Month < time.January || b.Activation.Month > time.December {
		return fmt.Errorf("activation month is invalid")
	}
	if b.Deactivation != nil && b.Deactivation.Before(b.Activation) {
		return fmt.Errorf("deactivation %s precedes activation %s", b.Deactivation, b.Activation)
	}
	return nil
}

// Installment is a fixed-term obligation: a total amount repaid in equal
// monthly amounts over TermMonths periods starting at Start.
type Installment struct {
	CreatedAt     time.Time
	ID            string
	Name          string
	AccountID     string
	Start         MonthYear
	TotalAmount   float64
	MonthlyAmount float64
	TermMonths    int
}

// Validate ensures the installment has valid data.
func (i *Installment) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("installment ID is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("installment name is required")
	}
	if i.TermMonths <= 0 {
		return fmt.Errorf("term must be a positive number of months")
	}
	if i.MonthlyAmount < 0 || i.TotalAmount < 0 {
		return fmt.Errorf("amounts cannot be negative")
	}
	if i.Start.Month < time.January || i.Start.Month > time.December {
		return fmt.Errorf("start month is invalid")
	}
	return nil
}
