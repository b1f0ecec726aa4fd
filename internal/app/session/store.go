package session

import (
	"sync"

	"journal/internal/pkg/metrics"
)

// Observer receives store events in mutation order. Observers run on the mutating goroutine
// and must not block; they may call Get but not Set, Clear or Rehydrate.
type Observer func(Event)

// Store owns the current Session. The zero value is not usable; use NewStore.
type Store struct {
	// notifyMu serializes mutation+notification so observers see events in mutation order.
	notifyMu sync.Mutex

	mu      sync.RWMutex
	current Session

	observers []Observer
}

// NewStore returns a store holding the empty session.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn for every later mutation.
func (s *Store) Subscribe(fn Observer) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.observers = append(s.observers, fn)
}

// Get returns the current session.
func (s *Store) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Set replaces the session and schedules a write-through of the snapshot.
func (s *Store) Set(sess Session) {
	s.replace(EventSet, sess)
}

// Clear resets to the empty session and schedules a write-through, which drops the stored credentials.
func (s *Store) Clear() {
	s.replace(EventCleared, Session{})
}

// Rehydrate installs a session read back from durable storage. Observers are told, but the
// persister does not write it back.
func (s *Store) Rehydrate(sess Session) {
	s.replace(EventRehydrated, sess)
}

func (s *Store) replace(kind EventKind, sess Session) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	metrics.SessionMutations.WithLabelValues(string(kind)).Inc()

	ev := Event{Kind: kind, Session: sess}
	for _, fn := range s.observers {
		fn(ev)
	}
}
