// Package router decides, per navigation, whether a view may be shown for the
// current authentication state or where the user is sent instead.
package router

import (
	"net/url"
	"strings"
	"sync"
)

// Paths of the client's routes.
const (
	PathSignIn         = "/"
	PathSignUp         = "/signup"
	PathForgotPassword = "/forgot-password"
	PathResetPassword  = "/reset-password"
	PathDashboard      = "/dashboard"
	PathProfile        = "/profile"
)

// View names what a route renders.
type View string

const (
	ViewSignIn         View = "signin"
	ViewSignUp         View = "signup"
	ViewForgotPassword View = "forgot-password"
	ViewResetPassword  View = "reset-password"
	ViewDashboard      View = "dashboard"
	ViewProfile        View = "profile"
)

// Route is an immutable entry of the route table.
type Route struct {
	Path         string
	RequiresAuth bool
	View         View
}

// Decision is the outcome of guarding a route: either render Route, or go to
// RedirectTo.
type Decision struct {
	Render     bool
	Route      Route
	RedirectTo string
}

// Guard renders r only when its auth requirement matches the session state.
// A private route hit while signed out goes to the sign-in page; a public
// route hit while signed in goes to the dashboard.
func Guard(r Route, authenticated bool) Decision {
	if r.RequiresAuth == authenticated {
		return Decision{Render: true, Route: r}
	}
	if r.RequiresAuth {
		return Decision{Route: r, RedirectTo: PathSignIn}
	}
	return Decision{Route: r, RedirectTo: PathDashboard}
}

// Table is a lookup of routes by path.
type Table struct {
	routes map[string]Route
}

func NewTable(routes ...Route) Table {
	t := Table{routes: make(map[string]Route, len(routes))}
	for _, r := range routes {
		t.routes[r.Path] = r
	}
	return t
}

// DefaultTable is the client's route table.
func DefaultTable() Table {
	return NewTable(
		Route{Path: PathSignIn, View: ViewSignIn},
		Route{Path: PathSignUp, View: ViewSignUp},
		Route{Path: PathForgotPassword, View: ViewForgotPassword},
		Route{Path: PathResetPassword, View: ViewResetPassword},
		Route{Path: PathDashboard, RequiresAuth: true, View: ViewDashboard},
		Route{Path: PathProfile, RequiresAuth: true, View: ViewProfile},
	)
}

func (t Table) Lookup(path string) (Route, bool) {
	r, ok := t.routes[path]
	return r, ok
}

// AuthState is the read-only view of the session the navigator needs.
type AuthState interface {
	IsAuthenticated() bool
}

// Location is where the navigator currently is.
type Location struct {
	Route Route
	Query url.Values
}

// Navigator resolves paths through the route table and the guard. Unknown
// paths resolve to the sign-in route.
type Navigator struct {
	table Table
	auth  AuthState

	mu      sync.Mutex
	current Location
}

func NewNavigator(table Table, auth AuthState) *Navigator {
	return &Navigator{table: table, auth: auth}
}

// Navigate moves to target, which may carry a query string
// ("/reset-password?token=abc"). It returns the location actually rendered
// and whether the guard redirected. The query survives only when the target
// itself is rendered.
func (n *Navigator) Navigate(target string) (Location, bool) {
	path, rawQuery, _ := strings.Cut(target, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}

	authenticated := n.auth.IsAuthenticated()

	loc, redirected := n.resolve(path, query, authenticated)

	n.mu.Lock()
	n.current = loc
	n.mu.Unlock()

	return loc, redirected
}

func (n *Navigator) resolve(path string, query url.Values, authenticated bool) (Location, bool) {
	route := n.lookup(path)

	d := Guard(route, authenticated)
	if d.Render {
		return Location{Route: route, Query: query}, false
	}

	// redirect targets always satisfy the guard, so one hop is enough
	return Location{Route: n.lookup(d.RedirectTo), Query: url.Values{}}, true
}

func (n *Navigator) lookup(path string) Route {
	if path == "" {
		path = PathSignIn
	}
	if r, ok := n.table.Lookup(path); ok {
		return r
	}
	if r, ok := n.table.Lookup(PathSignIn); ok {
		return r
	}
	return Route{Path: PathSignIn, View: ViewSignIn}
}

// Current returns the last rendered location.
func (n *Navigator) Current() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Refresh re-runs the guard for the current location, e.g. after signing in
// or out.
func (n *Navigator) Refresh() (Location, bool) {
	cur := n.Current()
	target := cur.Route.Path
	if q := cur.Query.Encode(); q != "" {
		target += "?" + q
	}
	return n.Navigate(target)
}
