package pages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/schedule"
	"github.com/dmitrijs2005/gobarber/internal/client/toast"
)

// DashboardView is what the dashboard shows for a selected day.
type DashboardView struct {
	Day   time.Time
	Today bool
	// Selected is false when Day cannot be picked; the view then carries the
	// calendar only.
	Selected    bool
	Unavailable []time.Time
	// Disabled lists every date of the month that cannot be picked: weekends
	// and the unavailable days.
	Disabled  []time.Time
	Morning   []models.Appointment
	Afternoon []models.Appointment
	// Next is set only when Day is today.
	Next *models.Appointment
}

// Dashboard loads the signed-in provider's availability for the month of day
// and the appointments of day itself. Weekends and fully booked days cannot be
// selected: they raise an info toast and their schedule is not loaded. Failed
// loads leave the matching part of the view empty and raise an error toast.
func (p *Pages) Dashboard(ctx context.Context, day time.Time) DashboardView {
	day = day.In(p.loc)
	y, m, d := day.Date()
	view := DashboardView{
		Day:   time.Date(y, m, d, 0, 0, 0, 0, p.loc),
		Today: schedule.IsToday(day, p.now()),
	}

	current := p.session.Current()
	if !current.Authenticated() {
		return view
	}

	failed := false

	days, err := p.api.MonthAvailability(ctx, current.User.ID, y, m)
	if err != nil {
		failed = true
	} else {
		view.Unavailable = schedule.UnavailableDays(y, m, days, p.loc)
		view.Disabled = schedule.DisabledDays(y, m, days, p.loc)
	}

	// without availability only weekends are known to be off
	if !schedule.Selectable(view.Day, view.Disabled) {
		if failed {
			p.toasts.Add(toast.KindError, "Could not load the schedule", "Please try again.")
		} else {
			p.toasts.Add(toast.KindInfo, "Day unavailable", "Pick a weekday with free slots.")
		}
		return view
	}
	view.Selected = true

	appointments, err := p.api.DaySchedule(ctx, y, m, d)
	if err != nil {
		failed = true
	} else {
		view.Morning, view.Afternoon = schedule.SplitByPeriod(appointments, p.loc)
		if view.Today {
			if next, ok := schedule.NextAppointment(appointments, p.now()); ok {
				view.Next = &next
			}
		}
	}

	if failed {
		p.toasts.Add(toast.KindError, "Could not load the schedule", "Please try again.")
	}
	return view
}
