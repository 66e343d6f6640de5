package dates

import (
	"errors"
	"time"
)

var ErrFormat = errors.New("invalid date format, use ISO 8601")

// layouts accepted for loan and payment dates: RFC3339 with zone, naive
// datetime (assumed UTC) and bare date.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse reads an ISO 8601 date or datetime string. Naive values are taken
// as UTC.
func Parse(raw string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrFormat
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped shifts t forward by the given number of calendar months,
// keeping the day-of-month and clamping to the last valid day of the target
// month on overflow (Jan 31 + 1 month = Feb 29 in a leap year).
//
// time.AddDate is not used here: it normalizes Feb 31 to Mar 2/3 instead of
// clamping.
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.UTC().Date()
	total := int(m) + months
	year := y + (total-1)/12
	month := time.Month((total-1)%12 + 1)
	if last := lastDay(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func lastDay(year int, month time.Month) int {
	// day 0 of the next month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthsBetween counts whole calendar months from a to b, ignoring days,
// matching (b.year-a.year)*12 + (b.month-a.month).
func MonthsBetween(a, b time.Time) int {
	ay, am, _ := a.UTC().Date()
	by, bm, _ := b.UTC().Date()
	return (by-ay)*12 + int(bm-am)
}
