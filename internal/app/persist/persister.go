package persist

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"journal/internal/app/session"
	"journal/internal/app/storage"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/metrics"
	"journal/internal/pkg/randx"
)

const writeTimeout = 5 * time.Second

// Persister writes the snapshot after every Set or Clear. Writes happen on the Run goroutine;
// bursts of mutations collapse into one write of the latest session.
type Persister struct {
	store   *session.Store
	storage storage.SnapshotStorage
	key     string

	dirty  chan struct{}
	logger zerolog.Logger
}

// NewPersister subscribes to store. Nothing is written until Run is started.
func NewPersister(store *session.Store, st storage.SnapshotStorage, key string) *Persister {
	p := &Persister{
		store:   store,
		storage: st,
		key:     key,
		dirty:   make(chan struct{}, 1),
		logger:  logx.Component("persister"),
	}

	store.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventRehydrated {
			return
		}
		select {
		case p.dirty <- struct{}{}:
		default:
			// a write is already pending and will pick up this state
		}
	})

	return p
}

// Run performs pending writes until ctx is done, then flushes one last pending write.
func (p *Persister) Run(ctx context.Context) {
	for {
		select {
		case <-p.dirty:
			p.write()
		case <-ctx.Done():
			select {
			case <-p.dirty:
				p.write()
			default:
			}
			return
		}
	}
}

func (p *Persister) write() {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	sess := p.store.Get()
	id := randx.WriteID()

	var err error
	if (Snapshot{Auth: sess}).Empty() {
		err = p.storage.Delete(ctx, p.key)
	} else {
		var data []byte
		data, err = Encode(sess)
		if err == nil {
			err = p.storage.Save(ctx, p.key, data)
		}
	}

	if err != nil {
		metrics.SnapshotWrites.WithLabelValues("error").Inc()
		p.logger.Error().Err(err).Str("write_id", id).Str("key", p.key).Msg("Snapshot write failed")
		return
	}

	metrics.SnapshotWrites.WithLabelValues("ok").Inc()
	p.logger.Debug().
		Str("write_id", id).
		Str("key", p.key).
		Bool("authenticated", sess.Authenticated()).
		Msg("Snapshot written")
}
