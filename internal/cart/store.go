package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/angelmondragon/pastaprego-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
	"github.com/angelmondragon/pastaprego-backend/pkg/metrics"
	"github.com/angelmondragon/pastaprego-backend/pkg/storage"
)

// ErrStoreEvicted is returned by mutations on a Store the Registry has
// dropped. Callers reopen the session and retry.
var ErrStoreEvicted = errors.New("cart store evicted")

// Options carries the optional collaborators of a Store. MaxOpen is read by
// the Registry only.
type Options struct {
	Logger  *logger.Logger
	Metrics *metrics.Storefront
	MaxOpen int
}

// Store owns one cart. Every mutation builds the next state, writes it to
// the backend and only then replaces the in-memory state, so a failed write
// leaves the cart exactly as it was.
type Store struct {
	mu      sync.Mutex
	name    string
	backend storage.Store
	cart    Cart
	logg    *logger.Logger
	metrics *metrics.Storefront

	// persisted is set once the backend holds a record for this cart,
	// readable or not.
	persisted bool
	evicted   bool
}

// Open rehydrates the cart stored under name. A missing, unreadable or
// invalid record yields an empty cart.
func Open(ctx context.Context, backend storage.Store, name string, opts Options) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if name == "" {
		return nil, fmt.Errorf("cart record name required")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{
		name:    name,
		backend: backend,
		cart:    Cart{Items: []LineItem{}},
		logg:    logg,
		metrics: opts.Metrics,
	}
	s.load(ctx)
	return s, nil
}

func (s *Store) load(ctx context.Context) {
	ctx = s.logg.WithField(ctx, "cart_record", s.name)

	payload, err := s.backend.Load(ctx, s.name)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.load.read_failed")
		s.metrics.IncStorageRecovery("read")
		return
	}

	cart, err := decode(payload)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.load.discarded")
		s.metrics.IncStorageRecovery("decode")
		s.persisted = true
		return
	}
	s.cart = cart
	s.persisted = true
}

// Name is the storage record backing this cart.
func (s *Store) Name() string {
	return s.name
}

// AddItem adds one unit of product with the given extras. A line with the
// same identity has its quantity incremented, otherwise a new line is appended.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, extras []catalog.Extra) (LineItem, error) {
	if product.ID == "" {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	item := newLineItem(product, extras)
	id := item.Identity()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evicted {
		return LineItem{}, ErrStoreEvicted
	}

	next := s.cart.clone()
	if i := next.index(item.Key); i >= 0 {
		if !next.Items[i].Identity().Equal(id) {
			return LineItem{}, pkgerrors.New(pkgerrors.CodeConflict, "line item key collides with a different selection").
				WithDetails(map[string]any{"line_item_key": item.Key})
		}
		next.Items[i].Quantity++
		item = next.Items[i]
	} else {
		next.Items = append(next.Items, item)
	}

	if err := s.commit(ctx, next, "add"); err != nil {
		return LineItem{}, err
	}
	return item.clone(), nil
}

// UpdateQuantity adds delta to the line's quantity, clamped at zero. A line
// reaching zero is removed and returned with Quantity 0. found is false, and
// nothing changes, when the key is not in the cart.
func (s *Store) UpdateQuantity(ctx context.Context, key LineItemKey, delta int) (item LineItem, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evicted {
		return LineItem{}, false, ErrStoreEvicted
	}

	next := s.cart.clone()
	i := next.index(key)
	if i < 0 {
		return LineItem{}, false, nil
	}

	qty := max(next.Items[i].Quantity+delta, 0)
	item = next.Items[i]
	item.Quantity = qty
	if qty == 0 {
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
	} else {
		next.Items[i].Quantity = qty
	}

	if err := s.commit(ctx, next, "update"); err != nil {
		return LineItem{}, true, err
	}
	return item.clone(), true, nil
}

// RemoveItem drops the line with key. found is false when it was absent.
func (s *Store) RemoveItem(ctx context.Context, key LineItemKey) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evicted {
		return false, ErrStoreEvicted
	}

	next := s.cart.clone()
	i := next.index(key)
	if i < 0 {
		return false, nil
	}
	next.Items = append(next.Items[:i], next.Items[i+1:]...)

	if err := s.commit(ctx, next, "remove"); err != nil {
		return true, err
	}
	return true, nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evicted {
		return ErrStoreEvicted
	}
	return s.commit(ctx, Cart{Items: []LineItem{}}, "clear")
}

// Drain returns the current contents and empties the cart in one step.
func (s *Store) Drain(ctx context.Context) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evicted {
		return Cart{}, ErrStoreEvicted
	}

	current := s.cart.clone()
	if err := s.commit(ctx, Cart{Items: []LineItem{}}, "drain"); err != nil {
		return Cart{}, err
	}
	return current, nil
}

// Snapshot returns a deep copy of the cart.
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

// ItemCount sums quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// evict retires the store. It waits for any mutation in flight, so the
// backend already holds the final state when the session is reopened.
func (s *Store) evict() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evicted = true
}

func (s *Store) isPersisted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persisted
}

// commit must be called with mu held.
func (s *Store) commit(ctx context.Context, next Cart, op string) error {
	payload, err := encode(next)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.backend.Save(ctx, s.name, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart").
			WithDetails(map[string]any{"op": op})
	}
	s.cart = next
	s.persisted = true
	s.metrics.IncCartMutation(op)
	return nil
}

func newLineItem(product catalog.Product, extras []catalog.Extra) LineItem {
	seen := make(map[string]struct{}, len(extras))
	kept := make([]catalog.Extra, 0, len(extras))
	for _, e := range extras {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		kept = append(kept, e)
	}
	item := LineItem{Product: product, Extras: kept, Quantity: 1}
	item.Key = item.Identity().Key()
	return item
}
