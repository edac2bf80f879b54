// Package cycle computes billing statement windows for credit accounts.
//
// A cycle starts on the account's anchor day and runs to the day before the
// next anchor day, clamped when a month is too short for the anchor. All
// functions here are pure: they take their inputs as in-memory values and
// never touch storage.
package cycle

import (
	"fmt"
	"time"

	"github.com/centavo-dev/centavo/internal/model"
)

// Direction controls which side of the current month cycles are generated on.
type Direction int

// Generation directions.
const (
	Past Direction = iota
	Future
	Both
)

// Generate produces count contiguous billing cycles anchored to anchorDay,
// positioned relative to the current month per dir. Both splits the count
// between past and future. An anchor day outside 1..31 or a non-positive
// count yields an empty slice so callers can degrade to a flat monthly
// fallback.
func Generate(anchorDay, count int, dir Direction) []model.Cycle {
	return GenerateFrom(time.Now(), anchorDay, count, dir)
}

// GenerateFrom is Generate with an explicit reference time.
func GenerateFrom(now time.Time, anchorDay, count int, dir Direction) []model.Cycle {
	if anchorDay < 1 || anchorDay > 31 || count <= 0 {
		return nil
	}

	var lo, hi int
	switch dir {
	case Past:
		lo, hi = -(count - 1), 0
	case Future:
		lo, hi = 0, count-1
	case Both:
		past := count / 2
		lo, hi = -past, count-past-1
	default:
		return nil
	}

	cycles := make([]model.Cycle, 0, hi-lo+1)
	for offset := lo; offset <= hi; offset++ {
		cycles = append(cycles, cycleAt(now, anchorDay, offset))
	}
	return cycles
}

// GenerateForYear produces every cycle whose end date falls inside the given
// calendar year: the bounded generation mode. A cycle closing in January
// typically opens in December of the prior year, so candidate starts range
// from that December through the year's own December.
func GenerateForYear(anchorDay, year int) []model.Cycle {
	if anchorDay < 1 || anchorDay > 31 {
		return nil
	}

	cycles := make([]model.Cycle, 0, 12)
	start := time.Date(year-1, time.December, 1, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset <= 13; offset++ {
		c := cycleAt(start, anchorDay, offset)
		if c.End.Year() == year {
			cycles = append(cycles, c)
		}
	}
	return cycles
}

// cycleAt builds the cycle starting at anchorDay in the month offset months
// away from ref. The end date is one day before the next cycle's start, so
// consecutive offsets always produce contiguous windows.
func cycleAt(ref time.Time, anchorDay, offset int) model.Cycle {
	start := anchorDate(ref, anchorDay, offset)
	next := anchorDate(ref, anchorDay, offset+1)
	end := next.AddDate(0, 0, -1)

	return model.Cycle{
		Start: start,
		End:   end,
		Label: formatLabel(start, end),
	}
}

// anchorDate returns the anchor day in the month offset months from ref,
// clamped to the last valid day of that month (anchor 31 in February yields
// Feb 28 or 29).
func anchorDate(ref time.Time, anchorDay, offset int) time.Time {
	base := time.Date(ref.Year(), ref.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	day := anchorDay
	if last := daysInMonth(base.Year(), base.Month()); day > last {
		day = last
	}
	return time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// formatLabel renders the cycle's display label, e.g. "Dec 13 – Jan 12, 2026".
// The year appears on the end date only.
func formatLabel(start, end time.Time) string {
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}
