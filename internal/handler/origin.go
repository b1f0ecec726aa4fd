package handler

import (
	"net/http"
	"net/url"

	"journal/internal/pkg/errs"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/resp"
)

// originPolicy decides which browser origins may read from or post to the client. The page's
// own origin is always allowed; anything else must be listed in ALLOWED_ORIGINS.
type originPolicy struct {
	origins map[string]struct{}
}

func newOriginPolicy(origins []string) originPolicy {
	p := originPolicy{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		p.origins[o] = struct{}{}
	}
	return p
}

// permits reports whether origin may access r.
func (p originPolicy) permits(r *http.Request, origin string) bool {
	if sameHost(r, origin) {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

func sameHost(r *http.Request, origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return u.Host == r.Host
}

// middleware rejects form posts sent from a foreign page. Requests without an Origin header
// come from non-browser callers and pass.
func (p originPolicy) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && !p.permits(r, origin) {
			logx.Warn("Form post rejected: Origin not allowed.", "origin", origin, "path", r.URL.Path)
			resp.RespondError(w, r, errs.NewError(errs.ErrOriginNotAllowed))
			return
		}
		next.ServeHTTP(w, r)
	})
}
