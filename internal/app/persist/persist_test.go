package persist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal/internal/app/session"
	"journal/internal/app/storage"
)

const key = "persist:journal:v1"

// memStorage is an in-memory SnapshotStorage with hooks for slow and failing reads.
type memStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	loadErr error
	block   chan struct{}
	loads   atomic.Int32
	writes  atomic.Int32
}

func newMem() *memStorage { return &memStorage{data: map[string][]byte{}} }

func (m *memStorage) Load(ctx context.Context, k string) ([]byte, error) {
	m.loads.Add(1)
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[k]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return d, nil
}

func (m *memStorage) Save(_ context.Context, k string, d []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes.Add(1)
	m.data[k] = d
	return nil
}

func (m *memStorage) Delete(_ context.Context, k string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes.Add(1)
	delete(m.data, k)
	return nil
}

func (m *memStorage) Close() error { return nil }

func (m *memStorage) get(k string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[k]
	return d, ok
}

func waitReady(t *testing.T, g *Gate) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, g.Wait(ctx))
}

func TestSnapshot_RoundTripAndCorruption(t *testing.T) {
	sess := session.Session{ID: "1", Username: "u", Email: "u@x.io", Token: "abc"}
	data, err := Encode(sess)
	require.NoError(t, err)

	snap, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sess, snap.Auth)

	_, err = Decode([]byte("{not json"))
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	_, err = Decode([]byte(`{"version":99,"auth":{"token":"x"}}`))
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestGate_NoSnapshotBootsSignedOut(t *testing.T) {
	store := session.NewStore()
	g := NewGate(store, newMem(), key, time.Second)
	assert.Equal(t, Loading, g.State())

	g.Start(context.Background())
	waitReady(t, g)

	assert.Equal(t, Ready, g.State())
	assert.False(t, store.Get().Authenticated())
}

func TestGate_RestoresSnapshot(t *testing.T) {
	mem := newMem()
	sess := session.Session{ID: "7", Email: "a@b.io", Token: "abc"}
	data, err := Encode(sess)
	require.NoError(t, err)
	mem.data[key] = data

	store := session.NewStore()
	var events []session.EventKind
	store.Subscribe(func(ev session.Event) { events = append(events, ev.Kind) })

	g := NewGate(store, mem, key, time.Second)
	g.Start(context.Background())
	waitReady(t, g)

	assert.Equal(t, sess, store.Get())
	assert.Equal(t, []session.EventKind{session.EventRehydrated}, events)
}

func TestGate_CorruptOrFailingStorageNeverBlocksBoot(t *testing.T) {
	t.Run("corrupt", func(t *testing.T) {
		mem := newMem()
		mem.data[key] = []byte("garbage")
		store := session.NewStore()
		g := NewGate(store, mem, key, time.Second)
		g.Start(context.Background())
		waitReady(t, g)
		assert.Equal(t, session.Session{}, store.Get())
	})

	t.Run("read error", func(t *testing.T) {
		mem := newMem()
		mem.loadErr = errors.New("disk on fire")
		store := session.NewStore()
		g := NewGate(store, mem, key, time.Second)
		g.Start(context.Background())
		waitReady(t, g)
		assert.Equal(t, session.Session{}, store.Get())
	})

	t.Run("slow read times out", func(t *testing.T) {
		mem := newMem()
		mem.block = make(chan struct{})
		defer close(mem.block)
		store := session.NewStore()
		g := NewGate(store, mem, key, 20*time.Millisecond)
		g.Start(context.Background())
		waitReady(t, g)
		assert.Equal(t, Ready, g.State())
	})
}

func TestGate_TransitionsExactlyOnce(t *testing.T) {
	mem := newMem()
	store := session.NewStore()
	var rehydrations atomic.Int32
	store.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventRehydrated {
			rehydrations.Add(1)
		}
	})

	g := NewGate(store, mem, key, time.Second)
	for i := 0; i < 5; i++ {
		g.Start(context.Background())
	}
	waitReady(t, g)

	// give stray goroutines a chance to misbehave
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), rehydrations.Load())
	assert.Equal(t, int32(1), mem.loads.Load())

	// a session set after boot is not overwritten by later Start calls
	store.Set(session.Session{Token: "abc"})
	g.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "abc", store.Get().Token)
	assert.Equal(t, Ready, g.State())
}

func TestGate_MiddlewareServesPlaceholderWhileLoading(t *testing.T) {
	mem := newMem()
	mem.block = make(chan struct{})
	g := NewGate(session.NewStore(), mem, key, 0)

	placeholder := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	h := g.Middleware(placeholder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func() int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Code
	}

	g.Start(context.Background())
	assert.Equal(t, http.StatusServiceUnavailable, serve())

	close(mem.block)
	waitReady(t, g)
	assert.Equal(t, http.StatusOK, serve())
}

func TestPersister_WritesLatestSession(t *testing.T) {
	mem := newMem()
	store := session.NewStore()
	p := NewPersister(store, mem, key)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	store.Set(session.Session{ID: "1", Token: "a"})
	store.Set(session.Session{ID: "2", Token: "b"})

	assert.Eventually(t, func() bool {
		d, ok := mem.get(key)
		if !ok {
			return false
		}
		snap, err := Decode(d)
		return err == nil && snap.Auth.Token == "b"
	}, time.Second, 5*time.Millisecond)

	store.Clear()
	assert.Eventually(t, func() bool {
		_, ok := mem.get(key)
		return !ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestPersister_IgnoresRehydrate(t *testing.T) {
	mem := newMem()
	store := session.NewStore()
	p := NewPersister(store, mem, key)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	store.Rehydrate(session.Session{Token: "from-disk"})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), mem.writes.Load())
}

func TestPersister_FlushesPendingWriteOnShutdown(t *testing.T) {
	mem := newMem()
	store := session.NewStore()
	p := NewPersister(store, mem, key)

	store.Set(session.Session{Token: "late"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Run(ctx)

	d, ok := mem.get(key)
	require.True(t, ok)
	snap, err := Decode(d)
	require.NoError(t, err)
	assert.Equal(t, "late", snap.Auth.Token)
}

func TestGateAndPersister_SurviveRestart(t *testing.T) {
	mem := newMem()

	// first process: sign in
	store1 := session.NewStore()
	p := NewPersister(store1, mem, key)
	store1.Set(session.Session{ID: "9", Token: "abc"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Run(ctx)

	// second process: rehydrate
	store2 := session.NewStore()
	g := NewGate(store2, mem, key, time.Second)
	g.Start(context.Background())
	waitReady(t, g)
	assert.Equal(t, session.Session{ID: "9", Token: "abc"}, store2.Get())
}
