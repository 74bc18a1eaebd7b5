package sessions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/manager"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/cart/snapshot"
	"github.com/light-bringer/storefront-service/internal/app/catalog/data"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// countingStore counts loads so tests can see how often a cart was opened.
type countingStore struct {
	*repo.MemoryStore
	mu    sync.Mutex
	loads int
}

func (s *countingStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	return s.MemoryStore.Load(ctx, key)
}

func newTestRegistry(t *testing.T) (*Registry, *countingStore, *catalog.Catalog) {
	t.Helper()
	c, err := data.Load()
	require.NoError(t, err)

	store := &countingStore{MemoryStore: repo.NewMemoryStore()}
	return NewRegistry(Options{Catalog: c, Store: store}), store, c
}

func TestRegistry_GetReusesManager(t *testing.T) {
	ctx := context.Background()
	reg, store, _ := newTestRegistry(t)

	a, err := reg.Get(ctx, "anna")
	require.NoError(t, err)
	b, err := reg.Get(ctx, "anna")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, snapshot.Key("anna"), a.Key())
	assert.Equal(t, 1, store.loads)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	reg, _, c := newTestRegistry(t)
	katt, _ := c.ItemBySlug("katt")

	anna, err := reg.Get(ctx, "anna")
	require.NoError(t, err)
	bo, err := reg.Get(ctx, "bo")
	require.NoError(t, err)

	anna.AddItem(ctx, katt, catalog.VariantS, 2)
	assert.Equal(t, 2, anna.TotalItems())
	assert.Equal(t, 0, bo.TotalItems())
}

func TestRegistry_ConcurrentFirstUseLoadsOnce(t *testing.T) {
	ctx := context.Background()
	reg, store, _ := newTestRegistry(t)

	const callers = 32
	got := make([]*manager.Manager, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := reg.Get(ctx, "anna")
			assert.NoError(t, err)
			got[i] = m
		}(i)
	}
	wg.Wait()

	for _, m := range got {
		assert.Same(t, got[0], m)
	}
	assert.Equal(t, 1, store.loads)
}

func TestRegistry_EmptyClientID(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	_, err := reg.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyClientID)
}

func TestRegistry_EvictAndCloseAll(t *testing.T) {
	ctx := context.Background()
	reg, store, c := newTestRegistry(t)
	hund, _ := c.ItemBySlug("hund")

	anna, err := reg.Get(ctx, "anna")
	require.NoError(t, err)
	anna.AddItem(ctx, hund, catalog.VariantM, 1)
	_, err = reg.Get(ctx, "bo")
	require.NoError(t, err)

	require.NoError(t, reg.Evict(ctx, "anna"))
	require.NoError(t, reg.Evict(ctx, "nobody"))
	assert.Equal(t, 1, reg.Len())

	// evicted carts come back from the store
	again, err := reg.Get(ctx, "anna")
	require.NoError(t, err)
	assert.NotSame(t, anna, again)
	assert.Equal(t, 1, again.TotalItems())
	assert.Equal(t, 3, store.loads)

	require.NoError(t, reg.CloseAll(ctx))
	assert.Zero(t, reg.Len())

	_, err = store.MemoryStore.Load(ctx, snapshot.Key("bo"))
	assert.NoError(t, err)
}

func TestRegistry_EvictIdle(t *testing.T) {
	ctx := context.Background()
	c, err := data.Load()
	require.NoError(t, err)
	katt, _ := c.ItemBySlug("katt")

	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	store := &countingStore{MemoryStore: repo.NewMemoryStore()}
	reg := NewRegistry(Options{Catalog: c, Store: store, Clock: clk, IdleTimeout: 30 * time.Minute})

	anna, err := reg.Get(ctx, "anna")
	require.NoError(t, err)
	anna.AddItem(ctx, katt, catalog.VariantL, 2)

	clk.Advance(20 * time.Minute)
	_, err = reg.Get(ctx, "bo")
	require.NoError(t, err)

	t.Run("recent sessions stay", func(t *testing.T) {
		n, err := reg.EvictIdle(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 2, reg.Len())
	})

	t.Run("idle session is flushed and dropped", func(t *testing.T) {
		clk.Advance(15 * time.Minute)

		n, err := reg.EvictIdle(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, reg.Len())

		_, err = store.MemoryStore.Load(ctx, snapshot.Key("anna"))
		require.NoError(t, err)

		again, err := reg.Get(ctx, "anna")
		require.NoError(t, err)
		assert.NotSame(t, anna, again)
		assert.Equal(t, 2, again.TotalItems())
	})

	t.Run("use keeps a session alive", func(t *testing.T) {
		clk.Advance(25 * time.Minute)
		_, err := reg.Get(ctx, "bo")
		require.NoError(t, err)
		clk.Advance(10 * time.Minute)

		n, err := reg.EvictIdle(ctx)
		require.NoError(t, err)
		// anna was reopened 35 minutes ago, bo used 10 minutes ago
		assert.Equal(t, 1, n)
		_, err = reg.Get(ctx, "bo")
		require.NoError(t, err)
		assert.Equal(t, 1, reg.Len())
	})
}

func TestRegistry_EvictIdleDisabled(t *testing.T) {
	ctx := context.Background()
	reg, _, _ := newTestRegistry(t)
	_, err := reg.Get(ctx, "anna")
	require.NoError(t, err)

	n, err := reg.EvictIdle(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_RunEviction(t *testing.T) {
	c, err := data.Load()
	require.NoError(t, err)
	reg := NewRegistry(Options{Catalog: c, Store: repo.NewMemoryStore(), IdleTimeout: time.Nanosecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err = reg.Get(ctx, "anna")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		reg.RunEviction(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("eviction loop did not stop")
	}
}
