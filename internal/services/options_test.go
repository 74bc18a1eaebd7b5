package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/config"
)

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoreBackend:          config.BackendMemory,
		StoreDir:              filepath.Join(t.TempDir(), "carts"),
		FreeShippingThreshold: 500,
		ShippingFee:           99,
		PageSize:              8,
	}
}

func TestNewServiceOptions_Memory(t *testing.T) {
	ctx := context.Background()
	s, err := NewServiceOptions(ctx, baseConfig(t), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 8, s.Catalog.Len())
	assert.IsType(t, &repo.MemoryStore{}, s.Store)
	assert.NotNil(t, s.SearchItems)
	assert.NotNil(t, s.GetItem)
	assert.NotNil(t, s.PlaceOrder)

	m, err := s.Sessions.Get(ctx, "anna")
	require.NoError(t, err)
	katt, _ := s.Catalog.ItemBySlug("katt")
	m.AddItem(ctx, katt, catalog.VariantS, 1)

	require.NoError(t, s.Close(ctx))
	assert.Zero(t, s.Sessions.Len())
}

func TestNewServiceOptions_FileStoreFlushesOnClose(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(t)
	cfg.StoreBackend = config.BackendFile

	s, err := NewServiceOptions(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	_, err = s.Sessions.Get(ctx, "anna")
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))

	entries, err := os.ReadDir(cfg.StoreDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewServiceOptions_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(t)
	cfg.StoreBackend = config.BackendRedis
	cfg.RedisAddr = mr.Addr()

	s, err := NewServiceOptions(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &repo.RedisStore{}, s.Store)
	require.NoError(t, s.Close(context.Background()))
}

func TestNewServiceOptions_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := baseConfig(t)
	cfg.StoreBackend = config.BackendRedis
	cfg.RedisAddr = addr

	_, err := NewServiceOptions(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestNewServiceOptions_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`items:
  - id: "1"
    name: Katt
    slug: katt
    category: normal
    price: {S: 1, M: 2, L: 3}
    stock: {S: 1, M: 1, L: 1}
`), 0o600))

	cfg := baseConfig(t)
	cfg.CatalogPath = path

	s, err := NewServiceOptions(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Catalog.Len())

	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewServiceOptions(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to load catalog")
}

func TestNewServiceOptions_UnknownBackend(t *testing.T) {
	cfg := baseConfig(t)
	cfg.StoreBackend = "cassandra"

	_, err := NewServiceOptions(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestNewServiceOptions_EvictsIdleSessions(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(t)
	cfg.StoreBackend = config.BackendFile
	cfg.SessionIdleTimeout = time.Nanosecond
	cfg.SessionSweepInterval = 5 * time.Millisecond

	s, err := NewServiceOptions(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	_, err = s.Sessions.Get(ctx, "anna")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return s.Sessions.Len() == 0 }, time.Second, 5*time.Millisecond)

	entries, err := os.ReadDir(cfg.StoreDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
