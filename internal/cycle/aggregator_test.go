package cycle

import (
	"testing"
	"time"

	"github.com/centavo-dev/centavo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(name string, d time.Time, amount float64) model.Transaction {
	return model.Transaction{ID: name, Name: name, Date: d, Amount: amount}
}

func TestAggregate_MembershipBoundary(t *testing.T) {
	cycles := GenerateFrom(date(2026, time.March, 1), 15, 2, Future)
	require.Len(t, cycles, 2)
	// Mar 15 – Apr 14, Apr 15 – May 14.

	txns := []model.Transaction{
		txn("on anchor day", date(2026, time.March, 15), 100), // anchor days sit outside every window
		txn("day after anchor", date(2026, time.March, 16), 50),
		txn("on end date", date(2026, time.April, 14), 25),
		txn("on next anchor day", date(2026, time.April, 15), 10),
		txn("day after next anchor", date(2026, time.April, 16), 5),
	}

	buckets := Aggregate(cycles, txns)
	require.Len(t, buckets, 2)

	assert.InDelta(t, 75.0, buckets[0].Total, 0.001)
	assert.Len(t, buckets[0].Transactions, 2)
	assert.InDelta(t, 5.0, buckets[1].Total, 0.001)
	assert.Len(t, buckets[1].Transactions, 1)
}

func TestAggregate_TimestampedTransactions(t *testing.T) {
	// Imported transactions carry a posting time of day. Membership is
	// decided by calendar day, so a mid-day transaction on a cycle's closing
	// day still belongs to that cycle instead of falling between the
	// midnight bounds.
	cycles := GenerateFrom(date(2026, time.January, 1), 15, 4, Both)

	endDay := time.Date(2026, time.January, 14, 10, 0, 0, 0, time.UTC)
	openDay := time.Date(2026, time.January, 16, 9, 30, 0, 0, time.UTC)
	txns := []model.Transaction{
		txn("mid-day on end date", endDay, 200),
		txn("mid-day early in next cycle", openDay, 80),
	}

	buckets := Aggregate(cycles, txns)

	var total float64
	for _, b := range buckets {
		total += b.Total
		for _, tx := range b.Transactions {
			switch tx.Name {
			case "mid-day on end date":
				assert.Equal(t, time.January, b.Cycle.End.Month())
				assert.Equal(t, 14, b.Cycle.End.Day())
			case "mid-day early in next cycle":
				assert.Equal(t, time.February, b.Cycle.End.Month())
			}
		}
	}
	assert.InDelta(t, 280.0, total, 0.001, "timestamped transactions must land in exactly one cycle")
}

func TestAggregate_Completeness(t *testing.T) {
	// Every transaction inside the covered range lands in exactly one cycle,
	// so cycle totals sum to the transaction total.
	cycles := GenerateFrom(date(2026, time.June, 1), 10, 12, Both)

	var txns []model.Transaction
	var want float64
	d := cycles[0].Start.AddDate(0, 0, 1)
	for i := 0; d.Before(cycles[len(cycles)-1].End); i++ {
		amount := float64(i%7) * 33.50
		txns = append(txns, txn("t", d, amount))
		want += amount
		d = d.AddDate(0, 0, 9)
	}

	var got float64
	for _, b := range Aggregate(cycles, txns) {
		got += b.Total
	}
	assert.InDelta(t, want, got, 0.001)
}

func TestAggregate_EmptyCycles(t *testing.T) {
	cycles := GenerateFrom(date(2026, time.March, 1), 15, 3, Future)
	buckets := Aggregate(cycles, nil)
	require.Len(t, buckets, 3)
	for _, b := range buckets {
		assert.Zero(t, b.Total)
		assert.Empty(t, b.Transactions)
	}
}

func TestAggregate_SignPreserved(t *testing.T) {
	cycles := GenerateFrom(date(2026, time.March, 1), 15, 1, Future)
	txns := []model.Transaction{
		txn("charge", date(2026, time.March, 20), 500),
		txn("refund", date(2026, time.March, 22), -120),
	}
	buckets := Aggregate(cycles, txns)
	assert.InDelta(t, 380.0, buckets[0].Total, 0.001)
}
