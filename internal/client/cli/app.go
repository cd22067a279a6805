package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/api"
	"github.com/dmitrijs2005/gobarber/internal/client/config"
	"github.com/dmitrijs2005/gobarber/internal/client/kvstore"
	"github.com/dmitrijs2005/gobarber/internal/client/pages"
	"github.com/dmitrijs2005/gobarber/internal/client/router"
	"github.com/dmitrijs2005/gobarber/internal/client/session"
	"github.com/dmitrijs2005/gobarber/internal/client/toast"
	"github.com/dmitrijs2005/gobarber/internal/filex"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Store
	toasts  *toast.Store
	nav     *router.Navigator
	pages   *pages.Pages
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
	closers []io.Closer
}

// NewApp wires the client: log file, session database, API client, session
// store (restored from disk), toasts, navigator and pages.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	a := &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}

	if c.LogFile != "" {
		if _, err := filex.EnsureParentDir(c.LogFile); err != nil {
			return nil, err
		}
	}
	logger, logCloser, err := logging.New(logging.Config{File: c.LogFile, Level: c.LogLevel, Format: c.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("error initializing logger: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, logCloser)

	kv, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	client, err := api.New(api.Config{URL: c.APIURL, Timeout: c.RequestTimeout})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.wire(ctx, kv, client, toast.NewStore(toast.WithTTL(c.ToastTTL), toast.WithListener(a.onToast)))
	return a, nil
}

func (a *App) openStore(ctx context.Context) (kvstore.Store, error) {
	if a.config.Ephemeral {
		a.logger.Info(ctx, "using in-memory session store")
		return kvstore.NewMemoryStore(), nil
	}

	if _, err := filex.EnsureParentDir(a.config.DatabasePath); err != nil {
		return nil, err
	}
	st, err := kvstore.Open(ctx, a.config.DatabasePath)
	if err != nil {
		a.logger.Error(ctx, "error initializing database", "path", a.config.DatabasePath, "error", err)
		return nil, err
	}
	a.closers = append(a.closers, st)
	return st, nil
}

// wire builds the stores on top of kv and client and restores the session.
func (a *App) wire(ctx context.Context, kv kvstore.Store, client *api.Client, toasts *toast.Store) {
	a.session = session.NewStore(kv, client, a.logger, session.WithTimeout(a.config.RequestTimeout))
	a.session.Restore(ctx)

	a.toasts = toasts
	a.nav = router.NewNavigator(router.DefaultTable(), a.session)
	a.pages = pages.New(a.session, client, a.toasts, pages.WithClock(a.now))
}

// Run restores the last location and serves commands until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to GoBarber CLI (type 'help' for commands)")
	a.show(a.nav.Navigate(router.PathDashboard))

	runREPL(ctx, a, a.status, a.reader)
}

// Close stops pending toast timers and releases the database and log file.
func (a *App) Close() error {
	if a.toasts != nil {
		a.toasts.Close()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	s := a.nav.Current().Route.Path
	if cur := a.session.Current(); cur.Authenticated() {
		s = cur.User.Name + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
