package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

func testItem(t *testing.T, slug string, prices, stock catalog.PerVariant) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(catalog.ItemParams{
		ID:       slug + "-id",
		Name:     slug,
		Slug:     slug,
		Category: catalog.CategoryStandard,
		ImageURL: "/assets/" + slug + ".jpg",
		Prices:   prices,
		Stock:    stock,
	})
	require.NoError(t, err)
	return item
}

func katt(t *testing.T) *catalog.Item {
	return testItem(t, "katt",
		catalog.PerVariant{S: 499, M: 799, L: 1199},
		catalog.PerVariant{S: 8, M: 5, L: 3})
}

func hund(t *testing.T) *catalog.Item {
	return testItem(t, "hund",
		catalog.PerVariant{S: 699, M: 999, L: 1499},
		catalog.PerVariant{S: 6, M: 4, L: 2})
}

func assertTotalsConsistent(t *testing.T, c *Cart) {
	t.Helper()
	items, price := 0, int64(0)
	seen := map[Key]bool{}
	for _, l := range c.Lines() {
		require.False(t, seen[l.Key()], "duplicate line %v", l.Key())
		seen[l.Key()] = true
		require.GreaterOrEqual(t, l.Quantity, 1)
		require.LessOrEqual(t, l.Quantity, MaxQuantity)
		items += l.Quantity
		price += l.UnitPrice * int64(l.Quantity)
	}
	require.Equal(t, items, c.TotalItems())
	require.Equal(t, price, c.TotalPrice())
}
