// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"time"

	"github.com/olegiv/studio-site/internal/model"
)

// GroupByDate buckets bookings by their ISO preferred date, keeping source
// order inside each bucket. Bookings without a date are skipped.
func GroupByDate(bookings []model.Booking) map[string][]model.Booking {
	groups := make(map[string][]model.Booking)
	for _, b := range bookings {
		if b.Date().IsZero() {
			continue
		}
		key := b.DateKey()
		groups[key] = append(groups[key], b)
	}
	return groups
}

// Day is one cell of a month grid.
type Day struct {
	Date     time.Time
	InMonth  bool
	IsToday  bool
	Bookings []model.Booking
}

// Key returns the ISO date of the cell.
func (d Day) Key() string {
	return d.Date.Format(model.DateLayout)
}

// MonthGrid lays out the weeks (Monday first) covering month, attaching the
// bookings of each day. today marks the current date.
func MonthGrid(month, today time.Time, bookings []model.Booking) [][]Day {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	todayKey := today.Format(model.DateLayout)
	groups := GroupByDate(bookings)

	// Weekday: Sunday=0; shift so Monday starts the week.
	start := first.AddDate(0, 0, -((int(first.Weekday()) + 6) % 7))
	end := last.AddDate(0, 0, (7-int(last.Weekday()))%7)

	var weeks [][]Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		week := make([]Day, 7)
		for i := range week {
			day := d.AddDate(0, 0, i)
			key := day.Format(model.DateLayout)
			week[i] = Day{
				Date:     day,
				InMonth:  day.Month() == first.Month(),
				IsToday:  key == todayKey,
				Bookings: groups[key],
			}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// ParseMonth reads a YYYY-MM value, falling back to the month of now.
func ParseMonth(s string, now time.Time) time.Time {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
