package cycle

import (
	"time"

	"github.com/centavo-dev/centavo/internal/model"
)

// resolveWindow is how many cycles Resolve generates around the reference
// time. Three years split between past and future comfortably covers
// obligations scheduled ahead against transaction history behind.
const resolveWindow = 36

// Resolve maps a (month, year) budget period to the cycle that closes in it.
// A statement is defined by when it ends, not when it opens: the cycle
// spanning Dec 13 – Jan 12 is the January obligation. Returns false when no
// generated cycle ends in the requested period, letting the caller fall back
// to a flat non-cycle amount.
func Resolve(month time.Month, year, anchorDay int) (model.Cycle, bool) {
	return ResolveFrom(time.Now(), month, year, anchorDay)
}

// ResolveFrom is Resolve with an explicit reference time.
func ResolveFrom(now time.Time, month time.Month, year, anchorDay int) (model.Cycle, bool) {
	for _, c := range GenerateFrom(now, anchorDay, resolveWindow, Both) {
		if c.End.Month() == month && c.End.Year() == year {
			return c, true
		}
	}
	return model.Cycle{}, false
}
