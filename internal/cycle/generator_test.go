package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateFrom_Contiguity(t *testing.T) {
	now := date(2026, time.March, 20)

	tests := []struct {
		name      string
		anchorDay int
		count     int
		dir       Direction
	}{
		{name: "past cycles mid-month anchor", anchorDay: 15, count: 6, dir: Past},
		{name: "future cycles", anchorDay: 15, count: 6, dir: Future},
		{name: "both directions", anchorDay: 13, count: 12, dir: Both},
		{name: "anchor 31 clamps through short months", anchorDay: 31, count: 12, dir: Both},
		{name: "anchor 1", anchorDay: 1, count: 4, dir: Past},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cycles := GenerateFrom(now, tt.anchorDay, tt.count, tt.dir)
			require.Len(t, cycles, tt.count)

			for i := 0; i < len(cycles)-1; i++ {
				gap := cycles[i].End.AddDate(0, 0, 1)
				assert.True(t, gap.Equal(cycles[i+1].Start),
					"cycle %d ends %s but cycle %d starts %s",
					i, cycles[i].End, i+1, cycles[i+1].Start)
				assert.True(t, cycles[i].Start.Before(cycles[i].End))
			}
		})
	}
}

func TestGenerateFrom_FebruaryClamping(t *testing.T) {
	// Anchor day 31 in a non-leap February starts on Feb 28.
	cycles := GenerateFrom(date(2026, time.February, 10), 31, 1, Future)
	require.Len(t, cycles, 1)
	assert.Equal(t, date(2026, time.February, 28), cycles[0].Start)
	assert.Equal(t, date(2026, time.March, 30), cycles[0].End)

	// Leap year: Feb 29.
	cycles = GenerateFrom(date(2028, time.February, 10), 31, 1, Future)
	require.Len(t, cycles, 1)
	assert.Equal(t, date(2028, time.February, 29), cycles[0].Start)
}

func TestGenerateFrom_InvalidInput(t *testing.T) {
	now := date(2026, time.March, 20)

	assert.Empty(t, GenerateFrom(now, 0, 6, Past))
	assert.Empty(t, GenerateFrom(now, 32, 6, Past))
	assert.Empty(t, GenerateFrom(now, -3, 6, Past))
	assert.Empty(t, GenerateFrom(now, 15, 0, Past))
	assert.Empty(t, GenerateFrom(now, 15, -1, Both))
}

func TestGenerateFrom_BothSplitsAroundNow(t *testing.T) {
	now := date(2026, time.June, 20)
	cycles := GenerateFrom(now, 15, 12, Both)
	require.Len(t, cycles, 12)

	// Half the window precedes the current month's cycle.
	assert.Equal(t, date(2025, time.December, 15), cycles[0].Start)
	assert.Equal(t, date(2026, time.June, 15), cycles[6].Start)
	assert.Equal(t, date(2026, time.November, 15), cycles[11].Start)
}

func TestGenerateFrom_Labels(t *testing.T) {
	cycles := GenerateFrom(date(2026, time.January, 5), 13, 1, Future)
	require.Len(t, cycles, 1)
	assert.Equal(t, "Jan 13 – Feb 12, 2026", cycles[0].Label)
}

func TestGenerateForYear(t *testing.T) {
	cycles := GenerateForYear(13, 2026)
	require.NotEmpty(t, cycles)

	// Every cycle closes inside 2026, and the January-closing cycle opens in
	// December 2025.
	for _, c := range cycles {
		assert.Equal(t, 2026, c.End.Year(), "cycle %s", c.Label)
	}
	assert.Equal(t, date(2025, time.December, 13), cycles[0].Start)
	assert.Equal(t, date(2026, time.January, 12), cycles[0].End)
	assert.Len(t, cycles, 12)

	assert.Empty(t, GenerateForYear(0, 2026))
}
