package pages

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/api"
	"github.com/dmitrijs2005/gobarber/internal/client/forms"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/router"
	"github.com/dmitrijs2005/gobarber/internal/client/session"
	"github.com/dmitrijs2005/gobarber/internal/client/toast"
)

// SessionService is the part of the session store the pages use.
type SessionService interface {
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context)
	UpdateUser(ctx context.Context, user models.User)
	Current() session.Session
}

// API is the part of the API client the pages use.
type API interface {
	CreateUser(ctx context.Context, name, email, password string) (models.User, error)
	RecoverPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password, confirmation, token string) error
	UpdateProfile(ctx context.Context, p api.ProfileUpdate) (models.User, error)
	UpdateAvatar(ctx context.Context, filename, contentType string, r io.Reader) (models.User, error)
	MonthAvailability(ctx context.Context, providerID string, year int, month time.Month) ([]models.DayAvailability, error)
	DaySchedule(ctx context.Context, year int, month time.Month, day int) ([]models.Appointment, error)
}

// Notifier shows a toast.
type Notifier interface {
	Add(kind toast.Kind, title, description string)
}

// Outcome is the result of submitting a form. Errors holds field errors when
// validation failed; Navigate is the path to go to next, empty to stay.
type Outcome struct {
	Errors   forms.Errors
	Navigate string
}

// OK reports whether the submission passed validation.
func (o Outcome) OK() bool {
	return o.Errors.Valid()
}

type Pages struct {
	session SessionService
	api     API
	toasts  Notifier
	now     func() time.Time
	loc     *time.Location
}

type Option func(*Pages)

func WithClock(now func() time.Time) Option {
	return func(p *Pages) { p.now = now }
}

// WithLocation sets the time zone used for calendar days and hours.
func WithLocation(loc *time.Location) Option {
	return func(p *Pages) {
		if loc != nil {
			p.loc = loc
		}
	}
}

func New(s SessionService, a API, n Notifier, opts ...Option) *Pages {
	p := &Pages{
		session: s,
		api:     a,
		toasts:  n,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func invalid(errs forms.Errors) Outcome {
	return Outcome{Errors: errs}
}

func navigate(path string) Outcome {
	return Outcome{Navigate: path}
}

var stay = Outcome{}

// SignOut drops the session and returns to the sign-in page.
func (p *Pages) SignOut(ctx context.Context) Outcome {
	p.session.SignOut(ctx)
	return navigate(router.PathSignIn)
}
