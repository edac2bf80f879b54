package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/centavo-dev/centavo/internal/common"
)

// AnchorKind tags how a billing anchor was specified.
type AnchorKind int

// Anchor kinds.
const (
	AnchorDayOfMonth AnchorKind = iota + 1
	AnchorFullDate
)

// AnchorSpec is the parsed form of an account's billing date. Billing dates
// arrive loosely typed: either a full date string or a bare day-of-month,
// sometimes with surrounding text. Parsing happens once here, at ingestion,
// rather than defensively at every call site.
type AnchorSpec struct {
	Date time.Time // set when Kind == AnchorFullDate
	Kind AnchorKind
	Day  int // day of month, 1..31
}

var anchorDigits = regexp.MustCompile(`\d+`)

// fullDateLayouts are tried in order when parsing a billing date string.
var fullDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// ParseAnchor parses a billing-date string into an AnchorSpec. A string
// containing a full date yields the date's day-of-month; otherwise the first
// run of digits is taken as the day. Days outside 1..31 are an error.
func ParseAnchor(raw string) (AnchorSpec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AnchorSpec{}, fmt.Errorf("%w: billing date is empty", common.ErrInvalidAnchor)
	}

	for _, layout := range fullDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return AnchorSpec{Kind: AnchorFullDate, Date: t, Day: t.Day()}, nil
		}
	}

	digits := anchorDigits.FindString(trimmed)
	if digits == "" {
		return AnchorSpec{}, fmt.Errorf("%w: no day of month in %q", common.ErrInvalidAnchor, raw)
	}

	day, err := strconv.Atoi(digits)
	if err != nil {
		return AnchorSpec{}, fmt.Errorf("%w: unparseable day of month %q: %v", common.ErrInvalidAnchor, digits, err)
	}
	if day < 1 || day > 31 {
		return AnchorSpec{}, fmt.Errorf("%w: day of month %d out of range 1..31", common.ErrInvalidAnchor, day)
	}

	return AnchorSpec{Kind: AnchorDayOfMonth, Day: day}, nil
}
