package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/storage"
)

// DefaultMaxOpen bounds the carts a Registry keeps in memory when no
// limit is configured.
const DefaultMaxOpen = 10000

const evictedRetries = 3

// Registry hands out one Store per cart session, opening it lazily from the
// backend on first use. At most maxOpen stores stay in memory; the least
// recently used one is evicted and reopened from its record when needed.
type Registry struct {
	mu      sync.Mutex
	backend storage.Store
	record  string
	opts    Options
	stores  *lru.Cache
}

func NewRegistry(backend storage.Store, record string, opts Options) (*Registry, error) {
	if backend == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if record == "" {
		return nil, fmt.Errorf("cart record name required")
	}
	limit := opts.MaxOpen
	if limit <= 0 {
		limit = DefaultMaxOpen
	}
	stores, err := lru.NewWithEvict(limit, func(_ interface{}, value interface{}) {
		if s, ok := value.(*Store); ok {
			s.evict()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("cart registry: %w", err)
	}
	return &Registry{
		backend: backend,
		record:  record,
		opts:    opts,
		stores:  stores,
	}, nil
}

// RecordName is the storage record for a session: the bare record for the
// default (empty) session, "<record>:<session>" otherwise.
func RecordName(record, session string) string {
	if session == "" {
		return record
	}
	return record + ":" + session
}

// Cart returns the Store for session, opening and caching it if needed.
func (r *Registry) Cart(ctx context.Context, session string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.stores.Get(session); ok {
		return v.(*Store), nil
	}
	s, err := Open(ctx, r.backend, RecordName(r.record, session), r.opts)
	if err != nil {
		return nil, err
	}
	r.stores.Add(session, s)
	return s, nil
}

// Snapshot reads the session's cart. A session with no record is not cached,
// so reads alone never grow the registry.
func (r *Registry) Snapshot(ctx context.Context, session string) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.stores.Get(session); ok {
		return v.(*Store).Snapshot(), nil
	}
	s, err := Open(ctx, r.backend, RecordName(r.record, session), r.opts)
	if err != nil {
		return Cart{}, err
	}
	if s.isPersisted() {
		r.stores.Add(session, s)
	}
	return s.Snapshot(), nil
}

// WithCart runs fn against the session's Store, reopening the session when
// fn hit a store evicted underneath it.
func (r *Registry) WithCart(ctx context.Context, session string, fn func(*Store) error) error {
	var err error
	for _i := 0; _i < evictedRetries; _i++ {
		var s *Store
		s, err = r.Cart(ctx, session)
		if err != nil {
			return err
		}
		err = fn(s)
		if !errors.Is(err, ErrStoreEvicted) {
			return err
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart unavailable, retry")
}

// Len reports how many carts are open.
func (r *Registry) Len() int {
	return r.stores.Len()
}
