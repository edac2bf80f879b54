package cycle

import (
	"github.com/centavo-dev/centavo/internal/model"
)

// Bucket holds one cycle's member transactions and their arithmetic total.
// The total preserves the account's sign convention; it is not renormalized.
type Bucket struct {
	Cycle        model.Cycle
	Transactions []model.Transaction
	Total        float64
}

// Aggregate buckets transactions into cycles. Membership is the cycle's
// (start, end] interval at calendar-day precision; a transaction dated
// exactly on an anchor day falls outside both adjacent windows. A cycle
// with no member transactions yields an empty bucket with a zero total.
func Aggregate(cycles []model.Cycle, txns []model.Transaction) []Bucket {
	buckets := make([]Bucket, len(cycles))
	for i, c := range cycles {
		buckets[i] = Bucket{Cycle: c, Transactions: []model.Transaction{}}
	}

	for _, txn := range txns {
		for i := range buckets {
			if buckets[i].Cycle.Contains(txn.Date) {
				buckets[i].Transactions = append(buckets[i].Transactions, txn)
				buckets[i].Total += txn.Amount
				break
			}
		}
	}

	return buckets
}
