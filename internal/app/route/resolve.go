package route

import (
	"net/url"
	"strings"

	"journal/internal/app/session"
)

// Decision is the outcome of resolving one navigation.
type Decision struct {
	// View is set when the page should be rendered.
	View View
	// Params holds the values of ":name" segments of the matched pattern.
	Params map[string]string
	// Redirect is set when the visitor must be sent elsewhere.
	Redirect string
	// From is the path that was requested when an auth-required route redirected to login.
	From string
}

// IsRedirect reports whether the decision is a redirect.
func (d Decision) IsRedirect() bool {
	return d.Redirect != ""
}

// Resolve walks the table in order and returns the decision for path under sess.
func Resolve(t *Table, path string, sess session.Session) Decision {
	if path == "" {
		path = RootURL
	}

	for _, r := range t.routes {
		if r.Pattern == CatchAll {
			return Decision{Redirect: LoginURL}
		}

		params, ok := match(r.Pattern, path, r.Exact)
		if !ok {
			continue
		}

		switch {
		case r.RequiresAuth && !sess.Authenticated():
			return Decision{Redirect: LoginURL, From: path}
		case r.GuestOnly && sess.Authenticated():
			return Decision{Redirect: RootURL}
		}

		return Decision{View: r.View, Params: params}
	}

	// a table without a catch-all still never renders an unknown path
	return Decision{Redirect: LoginURL}
}

// match compares pattern and path segment by segment. ":name" segments capture one
// non-empty path segment. A trailing slash on path is ignored.
func match(pattern, path string, exact bool) (map[string]string, bool) {
	pp := segments(pattern)
	ps := segments(path)

	if len(ps) < len(pp) || (exact && len(ps) != len(pp)) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			v, err := url.PathUnescape(ps[i])
			if err != nil || v == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = v
			continue
		}
		if seg != ps[i] {
			return nil, false
		}
	}

	return params, true
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// SafeReturnPath reports whether next is a local path the table renders for an
// authenticated visitor, so it can be used as a post-login destination.
func SafeReturnPath(t *Table, next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return false
	}
	d := Resolve(t, next, session.Session{Token: "probe"})
	return !d.IsRedirect()
}
