package model

import (
	"fmt"
	"strings"
	"time"
)

// Cycle is one billing statement window: a date interval of roughly one
// month anchored to a fixed day. Membership is (Start, End]: a cycle
// excludes its own anchor day, and since End is the day before the next
// anchor, anchor days sit outside every window. Cycles are derived on
// demand from an account's anchor, never persisted.
type Cycle struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether date falls inside the cycle, strictly after the
// start day and on or before the end day. Membership is decided at
// calendar-day precision: imported transactions keep their posting time of
// day, and an instant comparison against the midnight bounds would drop a
// mid-day transaction on the closing day from every cycle.
func (c Cycle) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.Start.Location())
	return d.After(c.Start) && !d.After(c.End)
}

// MonthName renders a month as its full English name, the canonical form
// used in schedule rows and budget-period keys.
func MonthName(m time.Month) string {
	return m.String()
}

// ParseMonth resolves a full English month name, case-insensitively.
func ParseMonth(name string) (time.Month, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == want {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}
