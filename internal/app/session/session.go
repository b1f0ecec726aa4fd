/*
Package session holds the identity of the signed-in user for the lifetime of the client process.

The Store is the only owner of the Session: views and the network link read it, while
sign-in, sign-out, authorization failures and boot-time rehydration replace it wholesale.
*/
package session

// Session is the authenticated user and their bearer token. An empty Token means signed out.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// DisplayName is the username, falling back to the email for accounts without one.
func (s Session) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	return s.Email
}

// EventKind tells subscribers which mutation produced an Event.
type EventKind string

const (
	EventSet        EventKind = "set"
	EventCleared    EventKind = "cleared"
	EventRehydrated EventKind = "rehydrated"
)

// Event describes one store mutation and the session it left behind.
type Event struct {
	Kind    EventKind
	Session Session
}
