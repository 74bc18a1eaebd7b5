package domain

import (
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// MaxQuantity is the upper bound on a line's quantity.
const MaxQuantity = catalog.MaxOrderQuantity

// Line is one (item, variant) entry in a cart. UnitPrice is copied from the
// catalog when the line is created and does not follow later price changes.
type Line struct {
	ItemID    string
	Name      string
	Slug      string
	ImageURL  string
	Category  catalog.Category
	Variant   catalog.Variant
	UnitPrice int64
	Quantity  int
}

// Key identifies a line. A cart holds at most one line per key.
type Key struct {
	Slug    string
	Variant catalog.Variant
}

// Key returns the line's uniqueness key.
func (l Line) Key() Key {
	return Key{Slug: l.Slug, Variant: l.Variant}
}

// Subtotal is UnitPrice × Quantity.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

func newLine(item *catalog.Item, v catalog.Variant, qty int) Line {
	return Line{
		ItemID:    item.ID(),
		Name:      item.Name(),
		Slug:      item.Slug(),
		ImageURL:  item.ImageURL(),
		Category:  item.Category(),
		Variant:   v,
		UnitPrice: item.Prices().Of(v),
		Quantity:  clampQuantity(qty),
	}
}

// clampQuantity forces qty into [1, MaxQuantity].
func clampQuantity(qty int) int {
	return min(max(qty, 1), MaxQuantity)
}
