package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
)

// setupTestRedis creates a miniredis server and a client pointing at it.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestRedisStore(t *testing.T) {
	client, _ := setupTestRedis(t)
	runStoreContract(t, NewRedisStore(client, time.Hour))
}

func TestRedisStore_SaveSetsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, 30*24*time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "djurshoppen-cart:a", []byte(`{}`)))

	stored, err := mr.Get("djurshoppen-cart:a")
	require.NoError(t, err)
	assert.Equal(t, "{}", stored)
	assert.Equal(t, 30*24*time.Hour, mr.TTL("djurshoppen-cart:a"))

	mr.FastForward(31 * 24 * time.Hour)
	_, err = store.Load(ctx, "djurshoppen-cart:a")
	assert.ErrorIs(t, err, contracts.ErrSnapshotNotFound)
}

func TestRedisStore_ZeroTTLNeverExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, 0)

	require.NoError(t, store.Save(context.Background(), "djurshoppen-cart:a", []byte(`{}`)))
	assert.Equal(t, time.Duration(0), mr.TTL("djurshoppen-cart:a"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Hour)
	mr.Close()

	err := store.Save(context.Background(), "djurshoppen-cart:a", []byte(`{}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "redis set failed")

	_, err = store.Load(context.Background(), "djurshoppen-cart:a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, contracts.ErrSnapshotNotFound)
}
