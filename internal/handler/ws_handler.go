/*
Package handler provides the HTTP handlers of the journal client.

This file upgrades open pages to the live session feed.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"journal/internal/app/persist"
	"journal/internal/pkg/errs"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/resp"
)

// HandleSessionFeed attaches a signed-in page to the live session hub.
func HandleSessionFeed(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Gate.State() != persist.Ready {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionLoading))
			return
		}

		if !deps.Store.Get().Authenticated() {
			logx.Info("Live feed rejected: not signed in.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		deps.Hub.Attach(conn)
	}
}
