// Package dates holds the calendar-date helpers shared by the booking code.
// Booking dates carry no time of day: they are always stored as midnight UTC.
package dates

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Normalize drops the time of day, keeping the calendar date as seen in t's
// own location, and returns midnight UTC of that date.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now.
func Today(now time.Time) time.Time {
	return Normalize(now)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return Normalize(t), nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Nights counts the calendar days between checkIn and checkOut.
func Nights(checkIn, checkOut time.Time) int {
	return int(Normalize(checkOut).Sub(Normalize(checkIn)).Hours() / 24)
}

// Each calls fn for every date in [from, to].
func Each(from, to time.Time, fn func(day time.Time)) {
	for day := Normalize(from); !day.After(Normalize(to)); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}
