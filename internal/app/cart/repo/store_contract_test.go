package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
)

// runStoreContract exercises the behaviour every SnapshotStore shares.
func runStoreContract(t *testing.T, store contracts.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		payload, err := store.Load(ctx, "djurshoppen-cart:missing")
		assert.ErrorIs(t, err, contracts.ErrSnapshotNotFound)
		assert.Nil(t, payload)
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "djurshoppen-cart:a", []byte(`{"version":1}`)))

		payload, err := store.Load(ctx, "djurshoppen-cart:a")
		require.NoError(t, err)
		assert.Equal(t, `{"version":1}`, string(payload))
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "djurshoppen-cart:b", []byte(`old`)))
		require.NoError(t, store.Save(ctx, "djurshoppen-cart:b", []byte(`new`)))

		payload, err := store.Load(ctx, "djurshoppen-cart:b")
		require.NoError(t, err)
		assert.Equal(t, "new", string(payload))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "djurshoppen-cart:c1", []byte(`one`)))
		require.NoError(t, store.Save(ctx, "djurshoppen-cart:c2", []byte(`two`)))

		payload, err := store.Load(ctx, "djurshoppen-cart:c1")
		require.NoError(t, err)
		assert.Equal(t, "one", string(payload))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "djurshoppen-cart:d", []byte(`x`)))
		require.NoError(t, store.Delete(ctx, "djurshoppen-cart:d"))

		_, err := store.Load(ctx, "djurshoppen-cart:d")
		assert.ErrorIs(t, err, contracts.ErrSnapshotNotFound)

		// deleting again is fine
		require.NoError(t, store.Delete(ctx, "djurshoppen-cart:d"))
	})
}
