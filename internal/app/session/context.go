package session

import (
	"context"
	"net/http"
)

type contextKey string

const contextSessionKey contextKey = "session"

// Middleware stores a copy of the current session in the request context, so one request
// renders against a single consistent session even if the store changes underneath it.
func Middleware(store *Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), contextSessionKey, store.Get())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the session captured by Middleware, or the empty session.
func FromContext(ctx context.Context) Session {
	sess, _ := ctx.Value(contextSessionKey).(Session)
	return sess
}
