package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/gobarber/internal/client/forms"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/pages"
	"github.com/dmitrijs2005/gobarber/internal/client/router"
	"github.com/dmitrijs2005/gobarber/internal/client/schedule"
	"github.com/dmitrijs2005/gobarber/internal/client/toast"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgCyan)
	fieldColor   = color.New(color.FgYellow)
	faintColor   = color.New(color.Faint)
)

func kindColor(k toast.Kind) *color.Color {
	switch k {
	case toast.KindError:
		return errorColor
	case toast.KindSuccess:
		return successColor
	default:
		return infoColor
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// onToast renders messages as they are added. Expiry happens on the clock's
// goroutine and is only logged, so it never interleaves with a prompt.
func (a *App) onToast(e toast.Event) {
	switch e.Type {
	case toast.EventAdded:
		a.printToast(e.Message)
	case toast.EventExpired:
		a.logger.Debug(context.Background(), "toast expired", "id", e.Message.ID, "title", e.Message.Title)
	}
}

func (a *App) printToast(m toast.Message) {
	c := kindColor(m.Kind)
	if m.Description == "" {
		c.Fprintf(a.out, "[%s] %s\n", m.Kind, m.Title)
		return
	}
	c.Fprintf(a.out, "[%s] %s: %s\n", m.Kind, m.Title, m.Description)
}

func (a *App) printFieldErrors(errs forms.Errors) {
	for _, f := range errs.Fields() {
		fieldColor.Fprintf(a.out, "  %s: %s\n", f, errs[f])
	}
}

// show reports where the navigator landed.
func (a *App) show(loc router.Location, redirected bool) {
	if redirected {
		faintColor.Fprintf(a.out, "redirected to %s\n", loc.Route.Path)
		return
	}
	faintColor.Fprintf(a.out, "at %s\n", loc.Route.Path)
}

func (a *App) printDashboard(v pages.DashboardView) {
	fmt.Fprintf(a.out, "Schedule for %s\n", v.Day.Format("Monday, 02 January 2006"))

	if len(v.Unavailable) > 0 {
		fmt.Fprintf(a.out, "Fully booked days this month: %v\n", dayNumbers(v.Unavailable))
	}
	if len(v.Disabled) > 0 {
		faintColor.Fprintf(a.out, "Days that cannot be picked: %v\n", dayNumbers(v.Disabled))
	}
	if !v.Selected {
		return
	}

	if v.Next != nil {
		successColor.Fprintf(a.out, "Next: %s %s\n", schedule.FormatHour(v.Next.Date, v.Day.Location()), v.Next.User.Name)
	}

	a.printPeriod("Morning", v.Morning, v)
	a.printPeriod("Afternoon", v.Afternoon, v)
}

func dayNumbers(dates []time.Time) []int {
	out := make([]int, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Day())
	}
	return out
}

func (a *App) printPeriod(title string, list []models.Appointment, v pages.DashboardView) {
	fmt.Fprintf(a.out, "%s:\n", title)
	if len(list) == 0 {
		faintColor.Fprintln(a.out, "  no appointments")
		return
	}
	for _, ap := range list {
		fmt.Fprintf(a.out, "  %s  %s\n", schedule.FormatHour(ap.Date, v.Day.Location()), ap.User.Name)
	}
}
