package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/forms"
	"github.com/dmitrijs2005/gobarber/internal/client/pages"
	"github.com/dmitrijs2005/gobarber/internal/client/router"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

const dayLayout = "2006-01-02"

// enter navigates to path and reports whether view is what got rendered.
func (a *App) enter(path string, view router.View) bool {
	loc, redirected := a.nav.Navigate(path)
	a.show(loc, redirected)
	return loc.Route.View == view
}

// apply prints field errors or follows the navigation of a page outcome.
func (a *App) apply(out pages.Outcome) {
	if !out.OK() {
		a.printFieldErrors(out.Errors)
		return
	}
	if out.Navigate != "" {
		a.show(a.nav.Navigate(out.Navigate))
	}
}

func (a *App) text(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) secret(prompt string) (string, error) {
	return getPassword(a.reader, prompt, a.out)
}

// Open navigates to path through the route guard.
func (a *App) Open(ctx context.Context, path string) error {
	a.show(a.nav.Navigate(path))
	return nil
}

func (a *App) SignIn(ctx context.Context) error {
	if !a.enter(router.PathSignIn, router.ViewSignIn) {
		return nil
	}

	var in forms.SignIn
	var err error
	if in.Email, err = a.text("E-mail"); err != nil {
		return err
	}
	if in.Password, err = a.secret("Password"); err != nil {
		return err
	}

	a.apply(a.pages.SignIn(ctx, in))
	return nil
}

func (a *App) SignUp(ctx context.Context) error {
	if !a.enter(router.PathSignUp, router.ViewSignUp) {
		return nil
	}

	var in forms.SignUp
	var err error
	if in.Name, err = a.text("Name"); err != nil {
		return err
	}
	if in.Email, err = a.text("E-mail"); err != nil {
		return err
	}
	if in.Password, err = a.secret("Password"); err != nil {
		return err
	}

	a.apply(a.pages.SignUp(ctx, in))
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	if !a.enter(router.PathForgotPassword, router.ViewForgotPassword) {
		return nil
	}

	email, err := a.text("E-mail")
	if err != nil {
		return err
	}

	a.apply(a.pages.ForgotPassword(ctx, forms.ForgotPassword{Email: email}))
	return nil
}

// ResetPassword opens the reset page with token, as the reset link would.
// Without a token, the one already in the current location is used.
func (a *App) ResetPassword(ctx context.Context, token string) error {
	target := router.PathResetPassword
	if token != "" {
		target += "?" + url.Values{"token": {token}}.Encode()
	} else if cur := a.nav.Current(); cur.Route.View == router.ViewResetPassword {
		token = cur.Query.Get("token")
		if token != "" {
			target += "?" + cur.Query.Encode()
		}
	}
	if !a.enter(target, router.ViewResetPassword) {
		return nil
	}

	var in forms.ResetPassword
	var err error
	if in.Password, err = a.secret("New password"); err != nil {
		return err
	}
	if in.PasswordConfirmation, err = a.secret("Confirm password"); err != nil {
		return err
	}

	a.apply(a.pages.ResetPassword(ctx, a.nav.Current().Query.Get("token"), in))
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if !a.enter(router.PathProfile, router.ViewProfile) {
		return nil
	}

	user := a.session.Current().User
	if user == nil {
		return nil
	}

	var in forms.Profile
	var err error
	if in.Name, err = a.text(withDefault("Name", user.Name)); err != nil {
		return err
	}
	in.Name = orDefault(in.Name, user.Name)
	if in.Email, err = a.text(withDefault("E-mail", user.Email)); err != nil {
		return err
	}
	in.Email = orDefault(in.Email, user.Email)

	if in.CurrentPassword, err = a.secret("Current password (empty to keep)"); err != nil {
		return err
	}
	if in.ChangesPassword() {
		if in.NewPassword, err = a.secret("New password"); err != nil {
			return err
		}
		if in.PasswordConfirmation, err = a.secret("Confirm password"); err != nil {
			return err
		}
	}

	a.apply(a.pages.UpdateProfile(ctx, in))
	return nil
}

func (a *App) Avatar(ctx context.Context, path string) error {
	if !a.enter(router.PathProfile, router.ViewProfile) {
		return nil
	}
	a.apply(a.pages.UpdateAvatar(ctx, path))
	return nil
}

// Dashboard shows the schedule of day (YYYY-MM-DD), today when empty.
func (a *App) Dashboard(ctx context.Context, day string) error {
	date := a.now()
	if day != "" {
		parsed, err := time.ParseInLocation(dayLayout, day, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", day)
		}
		date = parsed
	}

	if !a.enter(router.PathDashboard, router.ViewDashboard) {
		return nil
	}

	a.printDashboard(a.pages.Dashboard(ctx, date))
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not signed in")
		return nil
	}
	a.apply(a.pages.SignOut(ctx))
	return nil
}

func (a *App) Toasts(ctx context.Context) error {
	msgs := a.toasts.List()
	if len(msgs) == 0 {
		a.println("No notifications")
		return nil
	}
	for i, m := range msgs {
		fmt.Fprintf(a.out, "%d. ", i+1)
		a.printToast(m)
		faintColor.Fprintf(a.out, "   id %s\n", m.ID)
	}
	return nil
}

var errNoSuchToast = errors.New("no such notification")

// Dismiss removes a notification by its position in Toasts or by id.
func (a *App) Dismiss(ctx context.Context, ref string) error {
	msgs := a.toasts.List()

	id := ref
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(msgs) {
			return errNoSuchToast
		}
		id = msgs[n-1].ID
	}

	a.toasts.Remove(id)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	cur := a.session.Current()
	if !cur.Authenticated() {
		a.println("Not signed in")
		return nil
	}
	a.println(fmt.Sprintf("%s <%s> (id %s)", cur.User.Name, cur.User.Email, cur.User.ID))
	return nil
}
