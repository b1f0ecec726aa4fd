/*
Package route decides, for every navigation, whether to render a view or redirect.

The route table is an ordered list; Resolve walks it and returns a Decision without any
side effects, so the same table can be checked in tests and served over HTTP.
*/
package route

import (
	"errors"
	"fmt"
	"strings"
)

// View names a page the client can render.
type View string

const (
	ViewLogin                   View = "login"
	ViewSignup                  View = "signup"
	ViewHome                    View = "home"
	ViewNewExperience           View = "new-experience"
	ViewNewExperienceDefinition View = "new-experience-definition"
)

// CatchAll is the pattern that matches every path.
const CatchAll = "*"

// Route is one row of the table.
type Route struct {
	Pattern string
	// Exact requires the whole path to match; otherwise Pattern matches as a segment prefix.
	Exact bool
	// RequiresAuth sends visitors without a token to the login route.
	RequiresAuth bool
	// GuestOnly sends visitors with a token to the root route.
	GuestOnly bool
	// View is rendered on a match. The catch-all has no view and always redirects to login.
	View View
}

// Table is an ordered, validated list of routes.
type Table struct {
	routes []Route
}

// ErrRouteAfterCatchAll is returned by NewTable when the catch-all is not the last entry.
var ErrRouteAfterCatchAll = errors.New("route table has entries after the catch-all")

// NewTable validates routes and returns a Table.
func NewTable(routes ...Route) (*Table, error) {
	for i, r := range routes {
		if r.Pattern == CatchAll {
			if i != len(routes)-1 {
				return nil, fmt.Errorf("%w: index %d of %d", ErrRouteAfterCatchAll, i, len(routes))
			}
			continue
		}
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("route %d: pattern %q must start with /", i, r.Pattern)
		}
		if r.View == "" {
			return nil, fmt.Errorf("route %d: pattern %q has no view", i, r.Pattern)
		}
		if r.RequiresAuth && r.GuestOnly {
			return nil, fmt.Errorf("route %d: pattern %q cannot be both auth-required and guest-only", i, r.Pattern)
		}
	}

	t := &Table{routes: make([]Route, len(routes))}
	copy(t.routes, routes)
	return t, nil
}

// Routes returns a copy of the entries in evaluation order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// DefaultTable is the client's route table.
func DefaultTable() *Table {
	t, err := NewTable(
		Route{Pattern: SignupURL, Exact: true, GuestOnly: true, View: ViewSignup},
		Route{Pattern: LoginURL, Exact: true, GuestOnly: true, View: ViewLogin},
		Route{Pattern: RootURL, Exact: true, RequiresAuth: true, View: ViewHome},
		Route{Pattern: NewExperienceDefURL, Exact: true, RequiresAuth: true, View: ViewNewExperienceDefinition},
		Route{Pattern: NewExperienceURL, Exact: true, RequiresAuth: true, View: ViewNewExperience},
		Route{Pattern: CatchAll},
	)
	if err != nil {
		panic(err)
	}
	return t
}
