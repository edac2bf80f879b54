// Package model defines the core domain types for the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// AccountType distinguishes how balances and payments move on an account.
type AccountType string

// Supported account types.
const (
	AccountTypeDebit  AccountType = "Debit"
	AccountTypeCredit AccountType = "Credit"
)

// Account represents a payment source: a bank account or a credit card.
type Account struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Type        AccountType
	BillingDate string // raw anchor spec, e.g. "13" or "2024-05-13"; empty when not set
	CreditLimit *float64
	Balance     float64
}

// HasBillingAnchor reports whether this account participates in billing-cycle
// generation. Only credit accounts with a billing date do.
func (a *Account) HasBillingAnchor() bool {
	return a.Type == AccountTypeCredit && strings.TrimSpace(a.BillingDate) != ""
}

// Validate ensures the account has valid data.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("account ID is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account name is required")
	}
	if a.Type != AccountTypeDebit && a.Type != AccountTypeCredit {
		return fmt.Errorf("account type must be %s or %s", AccountTypeDebit, AccountTypeCredit)
	}
	if a.CreditLimit != nil && *a.CreditLimit < 0 {
		return fmt.Errorf("credit limit cannot be negative")
	}
	if a.BillingDate != "" {
		if _, err := ParseAnchor(a.BillingDate); err != nil {
			return fmt.Errorf("invalid billing date %q: %w", a.BillingDate, err)
		}
	}
	return nil
}
