package cart

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pastaprego-backend/internal/catalog"
	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/metrics"
	"github.com/angelmondragon/pastaprego-backend/pkg/storage"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

var (
	pasta = catalog.Product{ID: "p1", Name: "Spaghetti", Price: types.MustParseMoney("10.00"), CategoryID: enums.CategoryPastasClasicas}
	penne = catalog.Product{ID: "p2", Name: "Penne", Price: types.MustParseMoney("11.00"), CategoryID: enums.CategoryPastasClasicas}
	soda  = catalog.Product{ID: "b1", Name: "Soda", Price: types.MustParseMoney("2.00"), CategoryID: enums.CategoryBebidas}
	topA  = catalog.Extra{ID: "top-1", Name: "Mushrooms", Price: types.MustParseMoney("1.50"), Kind: enums.ExtraKindTopping}
	topB  = catalog.Extra{ID: "top-2", Name: "Spinach", Price: types.MustParseMoney("1.00"), Kind: enums.ExtraKindTopping}
	cheez = catalog.Extra{ID: "top-7", Name: "Parmesan", Price: types.MustParseMoney("2.00"), Kind: enums.ExtraKindTopping}
)

type flakyStorage struct {
	*storage.Memory
	mu       sync.Mutex
	failSave bool
	failLoad bool
	saves    int
}

func newFlakyStorage() *flakyStorage {
	return &flakyStorage{Memory: storage.NewMemory()}
}

func (f *flakyStorage) Load(ctx context.Context, name string) ([]byte, error) {
	if f.failLoad {
		return nil, errors.New("disk on fire")
	}
	return f.Memory.Load(ctx, name)
}

func (f *flakyStorage) Save(ctx context.Context, name string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("disk full")
	}
	f.saves++
	return f.Memory.Save(ctx, name, payload)
}

func openStore(t *testing.T, backend storage.Store) *Store {
	t.Helper()
	s, err := Open(context.Background(), backend, "cart", Options{})
	require.NoError(t, err)
	return s
}

func TestAddItemMergesSameSelectionRegardlessOfOrder(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())

	_, err := s.AddItem(ctx, pasta, []catalog.Extra{topA, topB})
	require.NoError(t, err)
	item, err := s.AddItem(ctx, pasta, []catalog.Extra{topB, topA})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, LineItemKey("p1-top-1-top-2"), snap.Items[0].Key)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddItemRepeatedCallsAccumulateQuantity(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	extras := []catalog.Extra{topA, topB, cheez}

	const n = 7
	for i := 0; i < n; i++ {
		shuffled := append([]catalog.Extra(nil), extras...)
		rand.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		_, err := s.AddItem(ctx, pasta, shuffled)
		require.NoError(t, err)
	}

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, n, snap.Items[0].Quantity)
	assert.Equal(t, n, s.ItemCount())
}

func TestAddItemDistinctSelectionsCreateDistinctLines(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())

	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, penne, nil)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, pasta, []catalog.Extra{topA})
	require.NoError(t, err)
	_, err = s.AddItem(ctx, pasta, []catalog.Extra{topB})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 4)
	keys := []LineItemKey{}
	for _, item := range snap.Items {
		keys = append(keys, item.Key)
	}
	assert.Equal(t, []LineItemKey{"p1", "p2", "p1-top-1", "p1-top-2"}, keys, "insertion order is display order")
}

func TestScenarioBasePastaThenWithExtra(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	cheese := catalog.Extra{ID: "x", Price: types.MustParseMoney("2.00"), Kind: enums.ExtraKindTopping}

	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.Equal(t, "10.00", snap.Subtotal().String())

	_, err = s.AddItem(ctx, pasta, []catalog.Extra{cheese})
	require.NoError(t, err)
	snap = s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "22.00", snap.Subtotal().String())
}

func TestAddItemRejectsKeyCollision(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	ab := catalog.Extra{ID: "a-b"}
	a := catalog.Extra{ID: "a"}
	b := catalog.Extra{ID: "b"}

	_, err := s.AddItem(ctx, pasta, []catalog.Extra{ab})
	require.NoError(t, err)
	_, err = s.AddItem(ctx, pasta, []catalog.Extra{a, b})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)
}

func TestAddItemRequiresProductID(t *testing.T) {
	s := openStore(t, storage.NewMemory())
	_, err := s.AddItem(context.Background(), catalog.Product{}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	for i := 0; i < 3; i++ {
		_, err := s.AddItem(ctx, pasta, nil)
		require.NoError(t, err)
	}

	item, found, err := s.UpdateQuantity(ctx, "p1", 2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5, item.Quantity)

	item, found, err = s.UpdateQuantity(ctx, "p1", -1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, 4, s.ItemCount())
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, soda, nil)
	require.NoError(t, err)

	item, found, err := s.UpdateQuantity(ctx, "p1", -2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, item.Quantity)

	_, ok := s.Snapshot().Find("p1")
	assert.False(t, ok)
	assert.Len(t, s.Snapshot().Items, 1)
}

func TestUpdateQuantityClampsAtZero(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)

	item, found, err := s.UpdateQuantity(ctx, "p1", -10)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, item.Quantity)
	assert.True(t, s.Snapshot().IsEmpty())
}

func TestUnknownKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyStorage()
	s := openStore(t, backend)
	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	saves := backend.saves

	_, found, err := s.UpdateQuantity(ctx, "nope", 1)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = s.RemoveItem(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, saves, backend.saves, "no-ops must not write")
	assert.Equal(t, 1, s.ItemCount())
}

func TestRemoveItemAndClear(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, soda, nil)
	require.NoError(t, err)

	found, err := s.RemoveItem(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, s.ItemCount())

	require.NoError(t, s.Clear(ctx))
	assert.True(t, s.Snapshot().IsEmpty())
	assert.Equal(t, 0, s.ItemCount())
}

func TestSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	_, err := s.AddItem(ctx, pasta, []catalog.Extra{topA})
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Items[0].Quantity = 99
	snap.Items[0].Extras[0].ID = "hacked"

	fresh := s.Snapshot()
	assert.Equal(t, 1, fresh.Items[0].Quantity)
	assert.Equal(t, "top-1", fresh.Items[0].Extras[0].ID)
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	s := openStore(t, backend)
	_, err := s.AddItem(ctx, pasta, []catalog.Extra{topB, topA})
	require.NoError(t, err)
	_, err = s.AddItem(ctx, soda, nil)
	require.NoError(t, err)
	_, _, err = s.UpdateQuantity(ctx, "b1", 2)
	require.NoError(t, err)

	reopened := openStore(t, backend)
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())
}

func TestOpenRecoversFromBadRecords(t *testing.T) {
	cases := map[string]string{
		"not json":         `{{{`,
		"wrong shape":      `{"items": 3}`,
		"zero quantity":    `[{"key":"p1","product":{"id":"p1"},"extras":[],"quantity":0}]`,
		"missing product":  `[{"key":"","product":{},"extras":[],"quantity":1}]`,
		"key mismatch":     `[{"key":"p9","product":{"id":"p1"},"extras":[],"quantity":1}]`,
		"duplicate keys":   `[{"key":"p1","product":{"id":"p1"},"quantity":1},{"key":"p1","product":{"id":"p1"},"quantity":2}]`,
		"repeated extra":   `[{"key":"p1-a","product":{"id":"p1"},"extras":[{"id":"a"},{"id":"a"}],"quantity":1}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			backend := storage.NewMemory()
			require.NoError(t, backend.Save(context.Background(), "cart", []byte(payload)))

			s, err := Open(context.Background(), backend, "cart", Options{Metrics: metrics.NewStorefront(reg)})
			require.NoError(t, err)
			assert.True(t, s.Snapshot().IsEmpty())

			mfs, err := reg.Gather()
			require.NoError(t, err)
			var recovered float64
			for _, mf := range mfs {
				if mf.GetName() == "cart_storage_recoveries_total" {
					recovered = mf.GetMetric()[0].GetCounter().GetValue()
				}
			}
			assert.Equal(t, float64(1), recovered)
		})
	}
}

func TestOpenAcceptsNullAndEmptyRecords(t *testing.T) {
	for _, payload := range []string{`null`, `[]`} {
		backend := storage.NewMemory()
		require.NoError(t, backend.Save(context.Background(), "cart", []byte(payload)))
		s := openStore(t, backend)
		assert.True(t, s.Snapshot().IsEmpty())
	}
}

func TestOpenRecoversFromReadFailure(t *testing.T) {
	backend := newFlakyStorage()
	backend.failLoad = true
	s := openStore(t, backend)
	assert.True(t, s.Snapshot().IsEmpty())
}

func TestOpenValidatesArguments(t *testing.T) {
	_, err := Open(context.Background(), nil, "cart", Options{})
	assert.Error(t, err)
	_, err = Open(context.Background(), storage.NewMemory(), "", Options{})
	assert.Error(t, err)
}

func TestFailedPersistLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyStorage()
	s := openStore(t, backend)
	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	before := s.Snapshot()

	backend.failSave = true

	_, err = s.AddItem(ctx, soda, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	_, _, err = s.UpdateQuantity(ctx, "p1", 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	_, err = s.RemoveItem(ctx, "p1")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.True(t, pkgerrors.IsCode(s.Clear(ctx), pkgerrors.CodeDependency))
	_, err = s.Drain(ctx)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	assert.Equal(t, before, s.Snapshot())

	backend.failSave = false
	reopened := openStore(t, backend.Memory)
	assert.Equal(t, before, reopened.Snapshot(), "storage still holds the last committed cart")
}

func TestDrainReturnsContentsAndEmpties(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	s := openStore(t, backend)
	_, err := s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, soda, nil)
	require.NoError(t, err)

	drained, err := s.Drain(ctx)
	require.NoError(t, err)
	assert.Len(t, drained.Items, 2)
	assert.True(t, s.Snapshot().IsEmpty())
	assert.True(t, openStore(t, backend).Snapshot().IsEmpty())
}

func TestConcurrentAddsAreSerialised(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			extras := []catalog.Extra{topA, topB}
			if i%2 == 0 {
				extras = []catalog.Extra{topB, topA}
			}
			_, err := s.AddItem(ctx, pasta, extras)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 50, snap.Items[0].Quantity)
}

func TestMutationsAreCounted(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s, err := Open(ctx, storage.NewMemory(), "cart", Options{Metrics: metrics.NewStorefront(reg)})
	require.NoError(t, err)

	_, err = s.AddItem(ctx, pasta, nil)
	require.NoError(t, err)
	_, _, err = s.UpdateQuantity(ctx, "p1", 1)
	require.NoError(t, err)
	_, _, err = s.UpdateQuantity(ctx, "missing", 1)
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "cart_mutations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"add": 1, "update": 1}, counts)
}
