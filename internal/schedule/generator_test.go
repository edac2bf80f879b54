package schedule

import (
	"testing"
	"time"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTermMonths(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "bare integer", raw: "12", want: 12},
		{name: "with unit suffix", raw: "12 months", want: 12},
		{name: "single month", raw: "1 month", want: 1},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-6 months", wantErr: true},
		{name: "no digits", raw: "a year", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTermMonths(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidTerm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForBiller(t *testing.T) {
	biller := &model.Biller{
		ID:             "b1",
		Name:           "Electric Bill",
		ExpectedAmount: 1500,
		Timing:         model.TimingFirstHalf,
		Activation:     model.MonthYear{Month: time.November, Year: 2025},
	}

	entries := ForBiller(biller, 4)
	require.Len(t, entries, 4)

	assert.Equal(t, time.November, entries[0].Month)
	assert.Equal(t, 2025, entries[0].Year)
	assert.Equal(t, time.December, entries[1].Month)
	assert.Equal(t, time.January, entries[2].Month)
	assert.Equal(t, 2026, entries[2].Year, "period advance crosses the year boundary")
	assert.Equal(t, time.February, entries[3].Month)

	for _, e := range entries {
		assert.Equal(t, model.StatusPending, e.Status)
		assert.InDelta(t, 1500.0, e.ExpectedAmount, 0.001)
		assert.Zero(t, e.AmountPaid)
	}
}

func TestForBiller_StopsAtDeactivation(t *testing.T) {
	deact := model.MonthYear{Month: time.January, Year: 2026}
	biller := &model.Biller{
		ID:             "b1",
		Name:           "Gym",
		ExpectedAmount: 900,
		Timing:         model.TimingSecondHalf,
		Activation:     model.MonthYear{Month: time.November, Year: 2025},
		Deactivation:   &deact,
	}

	entries := ForBiller(biller, 12)
	require.Len(t, entries, 3, "deactivation month is inclusive")
	assert.Equal(t, time.January, entries[2].Month)
	assert.Equal(t, 2026, entries[2].Year)
}

func TestForBiller_InvalidHorizon(t *testing.T) {
	biller := &model.Biller{ID: "b1", Activation: model.MonthYear{Month: time.January, Year: 2026}}
	assert.Empty(t, ForBiller(biller, 0))
	assert.Empty(t, ForBiller(biller, -1))
}

func TestForInstallment(t *testing.T) {
	inst := &model.Installment{
		ID:            "i1",
		Name:          "Phone",
		TotalAmount:   24000,
		MonthlyAmount: 2000,
		TermMonths:    12,
		Start:         model.MonthYear{Month: time.October, Year: 2025},
	}

	entries := ForInstallment(inst)
	require.Len(t, entries, 12)
	assert.Equal(t, time.October, entries[0].Month)
	assert.Equal(t, 2025, entries[0].Year)
	assert.Equal(t, time.September, entries[11].Month)
	assert.Equal(t, 2026, entries[11].Year)

	for _, e := range entries {
		assert.InDelta(t, 2000.0, e.ExpectedAmount, 0.001)
		assert.Equal(t, model.ObligationInstallment, e.ObligationType)
	}
}

func TestForInstallment_InvalidTerm(t *testing.T) {
	inst := &model.Installment{ID: "i1", TermMonths: 0}
	assert.Empty(t, ForInstallment(inst))
}
