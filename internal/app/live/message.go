package live

import (
	"time"

	"journal/internal/app/session"
)

// MessageType identifies a message pushed to live session feed clients.
type MessageType string

const (
	// TypeSessionState is sent once when a client connects.
	TypeSessionState MessageType = "session.state"

	// TypeSessionChanged is sent after every Session Store mutation.
	TypeSessionChanged MessageType = "session.changed"
)

// Message is the JSON frame written to feed clients.
type Message struct {
	Type          MessageType       `json:"type"`
	Kind          session.EventKind `json:"kind,omitempty"`
	Authenticated bool              `json:"authenticated"`
	Username      string            `json:"username,omitempty"`
	Timestamp     int64             `json:"timestamp"`
}

// NewSessionChanged builds the message announcing ev. The token never leaves the process.
func NewSessionChanged(ev session.Event) Message {
	msg := NewSessionState(ev.Session)
	msg.Type = TypeSessionChanged
	msg.Kind = ev.Kind
	return msg
}

// NewSessionState describes sess to a client that just connected.
func NewSessionState(sess session.Session) Message {
	return Message{
		Type:          TypeSessionState,
		Authenticated: sess.Authenticated(),
		Username:      sess.DisplayName(),
		Timestamp:     time.Now().UnixMilli(),
	}
}
