// Package caldate provides calendar arithmetic over naive local dates.
// Every function treats its inputs as plain year/month/day values; clock
// time and timezone offsets are ignored throughout.
package caldate

import (
	"fmt"
	"time"
)

// DayFormat is the wire format for calendar dates.
const DayFormat = "2006-01-02"

// Day truncates t to midnight UTC, the canonical form every other
// function in this package expects and returns.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func AddDays(d time.Time, n int) time.Time {
	return Day(d).AddDate(0, 0, n)
}

func AddWeeks(d time.Time, n int) time.Time {
	return Day(d).AddDate(0, 0, n*7)
}

// AddMonths steps n calendar months, clamping the day-of-month to the
// last valid day of the target month (Jan 31 + 1 month = Feb 29/28, not
// Mar 2 like time.AddDate would give).
func AddMonths(d time.Time, n int) time.Time {
	d = Day(d)
	year, month := d.Year(), int(d.Month())+n
	// normalize month into [1, 12]
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if month < 1 {
		month += 12
		year--
	}
	day := d.Day()
	if last := DaysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month, leap-year
// aware.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SameDay compares year/month/day only.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthBounds returns the first and last calendar date of d's month.
func MonthBounds(d time.Time) (first, last time.Time) {
	first = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = time.Date(d.Year(), d.Month(), DaysInMonth(d.Year(), d.Month()), 0, 0, 0, 0, time.UTC)
	return first, last
}

// ParseDay parses a YYYY-MM-DD string into a canonical Day.
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("caldate.ParseDay: %w", err)
	}
	return d, nil
}

// FormatDay renders d as YYYY-MM-DD.
func FormatDay(d time.Time) string {
	return d.Format(DayFormat)
}

// ParseClock parses an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("caldate.ParseClock: %w", err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
