package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction on an account.
// Amounts are signed; the sign convention follows the owning account's type
// (debit accounts subtract spending from the balance, credit accounts
// accumulate usage).
type Transaction struct {
	Date            time.Time
	ID              string
	Name            string
	AccountID       string
	Hash            string
	ScheduleEntryID *int64 // set when matched to a payment-schedule entry
	Amount          float64
}

// GenerateHash creates a unique hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Name,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
