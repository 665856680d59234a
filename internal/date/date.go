// Package date provides a day-granularity civil date used to key archive
// artifacts. Reports are identified by calendar day, never by time of day,
// so a dedicated type avoids the usual time.Time timezone pitfalls.
package date

import (
	"fmt"
	"time"
)

// Format is the canonical string form accepted and produced by this package.
const Format = "2006-01-02"

// KeyFormat is the compact form embedded in artifact file names.
const KeyFormat = "20060102"

// Date represents a calendar date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
// Out-of-range values are normalized the way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date in the local timezone.
func Today() Date { return New(time.Now().Date()) }

// Parse reads a date in ISO-8601 form ("2026-01-29").
func Parse(s string) (Date, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return New(t.Date()), nil
}

// ParseKey reads a date in the compact artifact-name form ("20260129").
func ParseKey(s string) (Date, error) {
	t, err := time.Parse(KeyFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date key %q (want YYYYMMDD): %w", s, err)
	}
	return New(t.Date()), nil
}

// time returns the canonical time.Time for the day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }

// Key formats the date as YYYYMMDD for artifact file names.
func (d Date) Key() string { return d.time().Format(KeyFormat) }

// Year returns the year.
func (d Date) Year() int { return d.y }

// Month returns the month.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 according to whether d is before, equal to,
// or after x. Suitable for slices.SortFunc.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns the date i days after d (or before, for negative i).
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }
