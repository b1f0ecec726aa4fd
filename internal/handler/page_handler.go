/*
Package handler provides the HTTP handlers of the journal client.

This file serves every navigation GET: the route table decides between rendering a view and
redirecting, and the chosen view is rendered against the session captured for the request.
*/
package handler

import (
	"errors"
	"net/http"
	"net/url"

	"journal/internal/app/api"
	"journal/internal/app/route"
	"journal/internal/app/session"
	"journal/internal/app/view"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/metrics"
)

var viewTitles = map[route.View]string{
	route.ViewLogin:                   "Login",
	route.ViewSignup:                  "Sign Up",
	route.ViewHome:                    "Home",
	route.ViewNewExperience:           "New Experience",
	route.ViewNewExperienceDefinition: "New Experience Definition",
}

// HandleNavigate resolves a navigation and renders or redirects.
func HandleNavigate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		decision := route.Resolve(deps.Table, r.URL.Path, sess)

		if decision.IsRedirect() {
			metrics.RouteDecisions.WithLabelValues("redirect").Inc()
			http.Redirect(w, r, redirectTarget(deps.Table, decision), http.StatusFound)
			return
		}

		page, ok := view.PageFor(decision.View)
		if !ok {
			logx.Warn("Route resolved to a view without a page", "view", string(decision.View))
			http.Redirect(w, r, route.LoginURL, http.StatusFound)
			return
		}

		metrics.RouteDecisions.WithLabelValues("render").Inc()

		data := view.Data{
			Title:   viewTitles[decision.View],
			Session: sess,
		}

		switch decision.View {
		case route.ViewLogin, route.ViewSignup:
			data.Signup = decision.View == route.ViewSignup
			data.Next = returnPath(deps.Table, r.URL.Query().Get("next"))

		case route.ViewHome:
			experiences, err := deps.API.Experiences(r.Context())
			if err != nil {
				if signedOut(err) {
					http.Redirect(w, r, route.LoginURL, http.StatusFound)
					return
				}
				logx.FromRequest(r).Warn().Err(err).Msg("Failed to load experiences")
				data.Errors = view.SubmissionErrors(err)
			}
			data.Experiences = experiences

		case route.ViewNewExperience:
			data.ExperienceID = decision.Params[route.NewExperienceIDParam]

		case route.ViewNewExperienceDefinition:
			data.DefinitionFields = []view.FieldInput{{}}
			data.FieldTypes = api.FieldDataTypes
		}

		deps.Renderer.Render(w, http.StatusOK, page, data)
	}
}

// redirectTarget is the Location for a redirect decision. The requested path travels along as
// "next" so sign-in can return to it; the root is the default destination and is left out.
func redirectTarget(t *route.Table, d route.Decision) string {
	if d.From == "" || d.From == route.RootURL || !route.SafeReturnPath(t, d.From) {
		return d.Redirect
	}
	return d.Redirect + "?" + url.Values{"next": {d.From}}.Encode()
}

// returnPath keeps next only if it is a safe post-login destination.
func returnPath(t *route.Table, next string) string {
	if route.SafeReturnPath(t, next) {
		return next
	}
	return ""
}

// signedOut reports whether err is the API rejecting the token. The network link has
// already cleared the session by the time the caller sees it.
func signedOut(err error) bool {
	var gqlErr *api.GraphQLError
	return errors.As(err, &gqlErr) && gqlErr.Unauthorized()
}
