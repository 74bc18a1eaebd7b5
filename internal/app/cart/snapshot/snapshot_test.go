package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "djurshoppen-cart:abc", Key("abc"))
}

func TestEncode_Layout(t *testing.T) {
	savedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, err := Encode([]cart.Line{{
		ItemID:    "1",
		Name:      "Katt",
		Slug:      "katt",
		ImageURL:  "/assets/animals/cat.jpg",
		Category:  catalog.CategoryStandard,
		Variant:   catalog.VariantM,
		UnitPrice: 799,
		Quantity:  2,
	}}, savedAt)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"version": 1,
		"savedAt": "2025-03-01T12:00:00Z",
		"lines": [{
			"id": "1",
			"name": "Katt",
			"slug": "katt",
			"imageUrl": "/assets/animals/cat.jpg",
			"category": "normal",
			"variant": "M",
			"price": 799,
			"quantity": 2
		}]
	}`, string(raw))
}

func TestEncode_EmptyCartHasEmptyLines(t *testing.T) {
	raw, err := Encode(nil, time.Unix(0, 0))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "[]", string(doc["lines"]))
}

func TestDecode(t *testing.T) {
	t.Run("current version", func(t *testing.T) {
		raw := []byte(`{"version":1,"savedAt":"2025-03-01T12:00:00Z","lines":[
			{"id":"3","name":"Papegoja","slug":"papegoja","imageUrl":"p.jpg","category":"exotisk","variant":"L","price":5999,"quantity":1}
		]}`)

		lines, savedAt, err := Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), savedAt)
		require.Len(t, lines, 1)
		assert.Equal(t, cart.Line{
			ItemID:    "3",
			Name:      "Papegoja",
			Slug:      "papegoja",
			ImageURL:  "p.jpg",
			Category:  catalog.CategoryExotic,
			Variant:   catalog.VariantL,
			UnitPrice: 5999,
			Quantity:  1,
		}, lines[0])
	})

	t.Run("unknown version", func(t *testing.T) {
		_, _, err := Decode([]byte(`{"version":2,"lines":[]}`))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("missing version", func(t *testing.T) {
		_, _, err := Decode([]byte(`{"lines":[]}`))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := Decode([]byte(`{"version":1,"lines":[{"quantity":"many"`))
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestRoundTrip(t *testing.T) {
	lines := []cart.Line{
		{ItemID: "1", Name: "Katt", Slug: "katt", Category: catalog.CategoryStandard, Variant: catalog.VariantS, UnitPrice: 499, Quantity: 10},
		{ItemID: "6", Name: "Giraff", Slug: "giraff", Category: catalog.CategoryExotic, Variant: catalog.VariantM, UnitPrice: 25999, Quantity: 1},
	}
	savedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	raw, err := Encode(lines, savedAt)
	require.NoError(t, err)

	got, gotSavedAt, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
	assert.Equal(t, savedAt, gotSavedAt)
}
