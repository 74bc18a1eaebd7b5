package get_item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/catalog/data"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

func TestExecute(t *testing.T) {
	catalog, err := data.Load()
	require.NoError(t, err)

	q := NewQuery(catalog)

	t.Run("known slug", func(t *testing.T) {
		item, err := q.Execute(&Request{Slug: "katt"})
		require.NoError(t, err)
		assert.Equal(t, "katt", item.Slug())
	})

	t.Run("unknown slug", func(t *testing.T) {
		item, err := q.Execute(&Request{Slug: "enhorning"})
		assert.Nil(t, item)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}
