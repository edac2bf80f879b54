package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-dev/centavo/internal/common"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind AnchorKind
		wantDay  int
		wantErr  bool
	}{
		{
			name:     "bare day number",
			raw:      "13",
			wantKind: AnchorDayOfMonth,
			wantDay:  13,
		},
		{
			name:     "day with whitespace",
			raw:      "  5 ",
			wantKind: AnchorDayOfMonth,
			wantDay:  5,
		},
		{
			name:     "ISO full date",
			raw:      "2024-05-13",
			wantKind: AnchorFullDate,
			wantDay:  13,
		},
		{
			name:     "US full date",
			raw:      "05/31/2024",
			wantKind: AnchorFullDate,
			wantDay:  31,
		},
		{
			name:     "day embedded in text",
			raw:      "every 21st",
			wantKind: AnchorDayOfMonth,
			wantDay:  21,
		},
		{
			name:    "day out of range",
			raw:     "32",
			wantErr: true,
		},
		{
			name:    "zero day",
			raw:     "0",
			wantErr: true,
		},
		{
			name:    "no digits at all",
			raw:     "whenever",
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseAnchor(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidAnchor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, spec.Kind)
			assert.Equal(t, tt.wantDay, spec.Day)
		})
	}
}

func TestMonthYearNext(t *testing.T) {
	assert.Equal(t, MonthYear{Month: time.February, Year: 2026},
		MonthYear{Month: time.January, Year: 2026}.Next())
	assert.Equal(t, MonthYear{Month: time.January, Year: 2027},
		MonthYear{Month: time.December, Year: 2026}.Next())
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("january")
	require.NoError(t, err)
	assert.Equal(t, time.January, m)

	m, err = ParseMonth("December")
	require.NoError(t, err)
	assert.Equal(t, time.December, m)

	_, err = ParseMonth("Jan")
	assert.Error(t, err, "abbreviations are not canonical month names")
}
