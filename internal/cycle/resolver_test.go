package cycle

import (
	"testing"
	"time"

	"github.com/centavo-dev/centavo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFrom_EndDateRule(t *testing.T) {
	now := date(2026, time.January, 5)

	// Anchor day 13: the Dec 13 – Jan 12 cycle closes in January, so it is
	// the January obligation, not December's.
	c, ok := ResolveFrom(now, time.January, 2026, 13)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 13), c.Start)
	assert.Equal(t, date(2026, time.January, 12), c.End)

	c, ok = ResolveFrom(now, time.December, 2025, 13)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.November, 13), c.Start)
	assert.Equal(t, date(2025, time.December, 12), c.End)
}

func TestResolveFrom_NotFound(t *testing.T) {
	now := date(2026, time.January, 5)

	// Far outside the generated window.
	_, ok := ResolveFrom(now, time.January, 2031, 13)
	assert.False(t, ok)

	_, ok = ResolveFrom(now, time.January, 2026, 0)
	assert.False(t, ok, "invalid anchor generates no cycles")
}

func TestResolveFrom_WindowCoversTwoYears(t *testing.T) {
	now := date(2026, time.June, 15)

	for _, period := range []model.MonthYear{
		{Month: time.June, Year: 2025},
		{Month: time.January, Year: 2026},
		{Month: time.December, Year: 2026},
		{Month: time.May, Year: 2027},
	} {
		c, ok := ResolveFrom(now, period.Month, period.Year, 10)
		require.True(t, ok, "period %s", period)
		assert.Equal(t, period.Month, c.End.Month())
		assert.Equal(t, period.Year, c.End.Year())
	}
}

func TestEndToEndScenario(t *testing.T) {
	// Billing day 15, two transactions in January 2026. The Dec 15 – Jan 14
	// cycle holds only the Jan 10 transaction; Jan 15 – Feb 14 holds only
	// the Jan 20 one; and "January 2026" resolves to the cycle closing
	// Jan 14.
	now := date(2026, time.January, 25)
	txns := []model.Transaction{
		txn("groceries", date(2026, time.January, 10), 200),
		txn("utilities", date(2026, time.January, 20), 300),
	}

	cycles := GenerateFrom(now, 15, 4, Both)
	buckets := Aggregate(cycles, txns)

	byStart := make(map[time.Time]Bucket, len(buckets))
	for _, b := range buckets {
		byStart[b.Cycle.Start] = b
	}

	decCycle, ok := byStart[date(2025, time.December, 15)]
	require.True(t, ok)
	assert.Equal(t, date(2026, time.January, 14), decCycle.Cycle.End)
	assert.InDelta(t, 200.0, decCycle.Total, 0.001)
	require.Len(t, decCycle.Transactions, 1)
	assert.Equal(t, "groceries", decCycle.Transactions[0].Name)

	janCycle, ok := byStart[date(2026, time.January, 15)]
	require.True(t, ok)
	assert.Equal(t, date(2026, time.February, 14), janCycle.Cycle.End)
	assert.InDelta(t, 300.0, janCycle.Total, 0.001)

	resolved, ok := ResolveFrom(now, time.January, 2026, 15)
	require.True(t, ok)
	assert.Equal(t, decCycle.Cycle.Start, resolved.Start)
	assert.Equal(t, decCycle.Cycle.End, resolved.End)
}
