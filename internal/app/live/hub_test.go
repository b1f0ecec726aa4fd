package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal/internal/app/session"
)

func startHub(t *testing.T, store *session.Store) (*Hub, string) {
	t.Helper()

	hub := NewHub(store)
	go hub.Run()
	t.Cleanup(hub.Stop)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(conn)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_SendsStateOnConnect(t *testing.T) {
	store := session.NewStore()
	store.Set(session.Session{ID: "1", Username: "ann", Token: "t"})
	_, url := startHub(t, store)

	msg := read(t, dial(t, url))
	assert.Equal(t, TypeSessionState, msg.Type)
	assert.True(t, msg.Authenticated)
	assert.Equal(t, "ann", msg.Username)
}

func TestHub_BroadcastsMutationsToEveryClient(t *testing.T) {
	store := session.NewStore()
	store.Set(session.Session{ID: "1", Email: "a@b.co", Token: "t"})
	hub, url := startHub(t, store)

	a := dial(t, url)
	b := dial(t, url)
	read(t, a)
	read(t, b)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

	store.Clear()

	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		assert.Equal(t, TypeSessionChanged, msg.Type)
		assert.Equal(t, session.EventCleared, msg.Kind)
		assert.False(t, msg.Authenticated)
	}
}

func TestHub_ForgetsClosedClients(t *testing.T) {
	hub, url := startHub(t, session.NewStore())

	conn := dial(t, url)
	read(t, conn)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesConnections(t *testing.T) {
	hub, url := startHub(t, session.NewStore())

	conn := dial(t, url)
	read(t, conn)

	hub.Stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestNewSessionChanged_OmitsToken(t *testing.T) {
	msg := NewSessionChanged(session.Event{Kind: session.EventSet, Session: session.Session{Username: "ann", Token: "secret"}})
	assert.Equal(t, TypeSessionChanged, msg.Type)
	assert.True(t, msg.Authenticated)
	assert.Equal(t, "ann", msg.Username)
}
