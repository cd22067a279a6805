// Package schedule holds the calendar computations behind the dashboard.
package schedule

import (
	"slices"
	"sort"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
)

// NoonHour splits the day: appointments starting before it are in the morning.
const NoonHour = 12

// UnavailableDays returns the dates of the month that have no free slot, in
// ascending order. Days outside the month are ignored.
func UnavailableDays(year int, month time.Month, days []models.DayAvailability, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	last := DaysIn(year, month)

	var out []time.Time
	for _, d := range days {
		if d.Available || d.Day < 1 || d.Day > last {
			continue
		}
		out = append(out, time.Date(year, month, d.Day, 0, 0, 0, 0, loc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// IsWeekend reports whether t falls on a Saturday or a Sunday in its own
// location. Providers do not work on weekends.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DisabledDays returns the dates of the month that cannot be selected: every
// weekend day plus the days without a free slot, in ascending order.
func DisabledDays(year int, month time.Month, days []models.DayAvailability, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	unavailable := UnavailableDays(year, month, days, loc)

	var out []time.Time
	for d := 1; d <= DaysIn(year, month); d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		if IsWeekend(date) || slices.ContainsFunc(unavailable, date.Equal) {
			out = append(out, date)
		}
	}
	return out
}

// Selectable reports whether day can be picked on the calendar: it is a
// weekday and not one of the disabled dates.
func Selectable(day time.Time, disabled []time.Time) bool {
	if IsWeekend(day) {
		return false
	}
	y, m, d := day.Date()
	for _, t := range disabled {
		ty, tm, td := t.In(day.Location()).Date()
		if ty == y && tm == m && td == d {
			return false
		}
	}
	return true
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SplitByPeriod separates appointments into morning and afternoon by their
// hour in loc, keeping input order.
func SplitByPeriod(appointments []models.Appointment, loc *time.Location) (morning, afternoon []models.Appointment) {
	if loc == nil {
		loc = time.Local
	}
	for _, a := range appointments {
		if a.Date.In(loc).Hour() < NoonHour {
			morning = append(morning, a)
		} else {
			afternoon = append(afternoon, a)
		}
	}
	return morning, afternoon
}

// NextAppointment returns the first appointment, in input order, that starts
// strictly after now.
func NextAppointment(appointments []models.Appointment, now time.Time) (models.Appointment, bool) {
	for _, a := range appointments {
		if a.Date.After(now) {
			return a, true
		}
	}
	return models.Appointment{}, false
}

// FormatHour renders the time of day as HH:mm in loc.
func FormatHour(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

// IsToday reports whether day falls on the same calendar date as now.
func IsToday(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.In(day.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
