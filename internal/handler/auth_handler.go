/*
Package handler provides the HTTP handlers of the journal client.

This file handles the sign-in, sign-up and logout form actions.
*/
package handler

import (
	"errors"
	"net/http"

	"journal/internal/app/api"
	"journal/internal/app/route"
	"journal/internal/app/session"
	"journal/internal/app/view"
	"journal/internal/pkg/errs"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/req"
)

// HandleLogin signs in with email and password.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return handleSignin(deps, false)
}

// HandleSignup creates an account and signs in with it.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return handleSignin(deps, true)
}

func handleSignin(deps *AppDeps, signup bool) http.HandlerFunc {
	title := viewTitles[route.ViewLogin]
	if signup {
		title = viewTitles[route.ViewSignup]
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, route.RootURL, http.StatusSeeOther)
			return
		}

		data := view.Data{Title: title, Signup: signup}

		if customErr := req.ParseForm(w, r); customErr != nil {
			data.Errors = view.FormErrors{view.FormErrorKey: customErr.Message}
			deps.Renderer.Render(w, customErr.Status, view.PageSignin, data)
			return
		}

		creds := api.Credentials{
			Email:    req.Field(r, "email"),
			Password: r.PostForm.Get("password"),
		}
		data.Next = returnPath(deps.Table, req.Field(r, "next"))
		data.Values = map[string]string{"email": creds.Email}

		var form any = view.LoginForm{Email: creds.Email, Password: creds.Password}
		if signup {
			form = view.SignupForm{
				Email:           creds.Email,
				Password:        creds.Password,
				PasswordConfirm: r.PostForm.Get("passwordConfirm"),
			}
		}

		if formErrs := view.Validate(form); formErrs != nil {
			data.Errors = formErrs
			deps.Renderer.Render(w, http.StatusUnprocessableEntity, view.PageSignin, data)
			return
		}

		var (
			user api.User
			err  error
		)
		if signup {
			user, err = deps.API.Signup(r.Context(), creds)
		} else {
			user, err = deps.API.Login(r.Context(), creds)
		}

		if err != nil {
			logx.FromRequest(r).Info().Err(err).Bool("signup", signup).Msg("Sign-in rejected")
			data.Errors = view.SubmissionErrors(err)
			deps.Renderer.Render(w, submissionStatus(err), view.PageSignin, data)
			return
		}

		deps.Store.Set(user.Session())
		logx.Info("Signed in", "user_id", user.ID, "signup", signup)

		target := route.RootURL
		if data.Next != "" {
			target = data.Next
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// HandleLogout clears the session and returns to the login view.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Store.Clear()
		logx.Info("Signed out")
		http.Redirect(w, r, route.LoginURL, http.StatusSeeOther)
	}
}

// submissionStatus is the HTTP status used when re-rendering a form after the API failed.
func submissionStatus(err error) int {
	var gqlErr *api.GraphQLError
	switch {
	case errors.As(err, &gqlErr):
		return errs.NewError(errs.ErrUpstreamRejected, gqlErr.Message).Status
	case errors.Is(err, api.ErrOffline):
		return errs.NewError(errs.ErrOffline).Status
	default:
		return errs.NewError(errs.ErrUnknown).Status
	}
}
