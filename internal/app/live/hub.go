/*
Package live pushes Session Store changes to open pages over WebSocket.

The Hub owns the set of connected clients. It subscribes to the store and fans every mutation
out to all clients, so a sign-out caused by one request is seen by every open page.
*/
package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"journal/internal/app/session"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/metrics"
)

const broadcastChannelBuffer = 64

// Hub tracks connected clients and broadcasts session events to them.
type Hub struct {
	store *session.Store

	// connected clients; only the Run goroutine writes to it.
	clients map[*Client]struct{}

	// encoded frames to be sent to all clients.
	broadcast chan []byte

	register   chan *Client
	unregister chan *Client

	// closed by Stop to end the Run loop.
	stopChan chan struct{}
	stopOnce sync.Once

	// mu guards clients for Count.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a Hub and subscribes it to store. Call Run to start delivering.
func NewHub(store *session.Store) *Hub {
	h := &Hub{
		store:      store,
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastChannelBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopChan:   make(chan struct{}),
		logger:     logx.Component("live"),
	}

	store.Subscribe(h.onSessionEvent)

	return h
}

// onSessionEvent runs on the mutating goroutine and must not block it.
func (h *Hub) onSessionEvent(ev session.Event) {
	frame, err := json.Marshal(NewSessionChanged(ev))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode session event.")
		return
	}

	select {
	case <-h.stopChan:
	case h.broadcast <- frame:
	default:
		h.logger.Warn().Str("kind", string(ev.Kind)).Msg("Broadcast queue full, dropping session event.")
	}
}

// Run is the Hub's event loop. It returns after Stop.
func (h *Hub) Run() {
	h.logger.Info().Msg("Live session hub started.")

	defer func() {
		h.mu.Lock()
		for c := range h.clients {
			close(c.send)
			delete(h.clients, c)
			metrics.LiveConnections.Dec()
		}
		h.mu.Unlock()

		h.logger.Info().Msg("Live session hub stopped.")
	}()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()

			metrics.LiveConnections.Inc()
			h.logger.Debug().Str("client_id", c.id).Int("total_clients", total).Msg("Client joined live feed.")

			c.sendMessage(NewSessionState(h.store.Get()))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				metrics.LiveConnections.Dec()
			}
			h.mu.Unlock()

			h.logger.Debug().Str("client_id", c.id).Msg("Client left live feed.")

		case frame := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				c.queue(frame)
			}
			h.mu.RUnlock()

		case <-h.stopChan:
			return
		}
	}
}

// Stop ends the Run loop and closes every client's send queue.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Attach serves conn until it closes. It blocks, so handlers call it last.
func (h *Hub) Attach(conn *websocket.Conn) {
	c := newClient(h, conn)

	select {
	case h.register <- c:
	case <-h.stopChan:
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump()
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopChan:
	}
}
