package persist

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"journal/internal/app/session"
	"journal/internal/app/storage"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/metrics"
)

// State is the lifecycle of the Gate.
type State int32

const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

// Gate holds back rendering until the persisted session has been read into the store.
// It moves from Loading to Ready exactly once and stays Ready.
type Gate struct {
	store   *session.Store
	storage storage.SnapshotStorage
	key     string
	timeout time.Duration

	state atomic.Int32
	once  sync.Once
	ready chan struct{}

	logger zerolog.Logger
}

// NewGate returns a Gate in the Loading state. A zero timeout waits for storage indefinitely.
func NewGate(store *session.Store, st storage.SnapshotStorage, key string, timeout time.Duration) *Gate {
	return &Gate{
		store:   store,
		storage: st,
		key:     key,
		timeout: timeout,
		ready:   make(chan struct{}),
		logger:  logx.Component("gate"),
	}
}

// Start reads the snapshot in the background. Later calls do nothing.
func (g *Gate) Start(ctx context.Context) {
	go g.rehydrate(ctx)
}

// State returns the current lifecycle state.
func (g *Gate) State() State {
	return State(g.state.Load())
}

// Ready is closed when the gate becomes Ready.
func (g *Gate) Ready() <-chan struct{} {
	return g.ready
}

// Wait blocks until the gate is Ready or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gate) rehydrate(ctx context.Context) {
	g.once.Do(func() {
		start := time.Now()
		sess, outcome := g.load(ctx)

		g.store.Rehydrate(sess)
		g.state.Store(int32(Ready))
		close(g.ready)

		metrics.RehydrateOutcome.WithLabelValues(outcome).Inc()
		g.logger.Info().
			Str("outcome", outcome).
			Bool("authenticated", sess.Authenticated()).
			Dur("took", time.Since(start)).
			Msg("Session rehydrated")
	})
}

// load never fails: anything other than a good snapshot is treated as no prior session.
func (g *Gate) load(ctx context.Context) (session.Session, string) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	data, err := g.storage.Load(ctx, g.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return session.Session{}, "empty"
	case err != nil:
		g.logger.Warn().Err(err).Str("key", g.key).Msg("Snapshot unreadable, starting signed out")
		return session.Session{}, "error"
	}

	snap, err := Decode(data)
	if err != nil {
		g.logger.Warn().Err(err).Str("key", g.key).Msg("Snapshot corrupt, starting signed out")
		return session.Session{}, "corrupt"
	}

	return snap.Auth, "restored"
}

// Middleware serves placeholder instead of next while the gate is Loading.
func (g *Gate) Middleware(placeholder http.Handler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.State() != Ready {
				metrics.RouteDecisions.WithLabelValues("loading").Inc()
				placeholder.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
