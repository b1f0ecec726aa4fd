/*
Package handler provides the HTTP handlers of the journal client.

This file exposes the current identity as JSON.
*/
package handler

import (
	"net/http"
	"time"

	"journal/internal/app/persist"
	"journal/internal/pkg/auth/jwt"
	"journal/internal/pkg/errs"
	"journal/internal/pkg/resp"
)

// SessionInfo is the JSON view of the session. The token is never included.
type SessionInfo struct {
	Authenticated bool       `json:"authenticated"`
	ID            string     `json:"id,omitempty"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// HandleGetSession describes the current session.
func HandleGetSession(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Gate.State() != persist.Ready {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionLoading))
			return
		}

		sess := deps.Store.Get()
		info := SessionInfo{
			Authenticated: sess.Authenticated(),
			ID:            sess.ID,
			Username:      sess.Username,
			Email:         sess.Email,
		}

		if sess.Authenticated() {
			if claims, err := jwt.Inspect(sess.Token); err == nil {
				if exp := claims.Expiry(); !exp.IsZero() {
					info.ExpiresAt = &exp
				}
			}
		}

		resp.RespondSuccess(w, r, info)
	}
}
