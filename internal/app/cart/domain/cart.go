package domain

import (
	"slices"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Cart is an ordered set of lines keyed by (slug, variant).
//
// Every mutation is total: arguments that match nothing are no-ops and
// out-of-range quantities are clamped. A Cart is not safe for concurrent use.
type Cart struct {
	lines []Line
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make([]Line, 0)}
}

// Restore rebuilds a cart from previously persisted lines. Lines with an
// unknown variant, an empty slug, a negative price or a non-positive quantity
// are dropped; quantities above MaxQuantity are clamped; lines sharing a key
// are merged into the first of them.
func Restore(lines []Line) *Cart {
	c := NewCart()
	for _, l := range lines {
		if l.Slug == "" || !l.Variant.Valid() || l.Quantity <= 0 || l.UnitPrice < 0 {
			continue
		}
		l.Quantity = clampQuantity(l.Quantity)
		if i := c.indexOf(l.Slug, l.Variant); i >= 0 {
			c.lines[i].Quantity = clampQuantity(c.lines[i].Quantity + l.Quantity)
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Add puts qty units of item in variant v into the cart. An existing line
// grows to min(existing+qty, MaxQuantity); a new line snapshots the variant's
// current price. qty below 1 counts as 1.
func (c *Cart) Add(item *catalog.Item, v catalog.Variant, qty int) {
	if item == nil || !v.Valid() {
		return
	}
	// Clamped before summing so huge requests cannot overflow.
	qty = clampQuantity(qty)

	if i := c.indexOf(item.Slug(), v); i >= 0 {
		c.lines[i].Quantity = clampQuantity(c.lines[i].Quantity + qty)
		return
	}
	c.lines = append(c.lines, newLine(item, v, qty))
}

// SetQuantity replaces the quantity of the matching line. qty <= 0 removes the
// line; larger values clamp to MaxQuantity.
func (c *Cart) SetQuantity(slug string, v catalog.Variant, qty int) {
	if qty <= 0 {
		c.Remove(slug, v)
		return
	}
	if i := c.indexOf(slug, v); i >= 0 {
		c.lines[i].Quantity = clampQuantity(qty)
	}
}

// ChangeVariant moves the line for (item, from) to variant to, keeping its
// quantity and position and taking the target variant's current price. When
// a line for (item, to) already exists the two merge.
func (c *Cart) ChangeVariant(item *catalog.Item, from, to catalog.Variant) {
	if item == nil || from == to || !to.Valid() {
		return
	}
	i := c.indexOf(item.Slug(), from)
	if i < 0 {
		return
	}

	qty := c.lines[i].Quantity
	if j := c.indexOf(item.Slug(), to); j >= 0 {
		qty += c.lines[j].Quantity
		c.lines[i] = newLine(item, to, qty)
		c.lines = slices.Delete(c.lines, j, j+1)
		return
	}
	c.lines[i] = newLine(item, to, qty)
}

// Remove deletes the matching line, if any.
func (c *Cart) Remove(slug string, v catalog.Variant) {
	if i := c.indexOf(slug, v); i >= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

// Clear deletes every line.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// Line returns the line for (slug, v).
func (c *Cart) Line(slug string, v catalog.Variant) (Line, bool) {
	if i := c.indexOf(slug, v); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of line subtotals.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

func (c *Cart) indexOf(slug string, v catalog.Variant) int {
	return slices.IndexFunc(c.lines, func(l Line) bool {
		return l.Slug == slug && l.Variant == v
	})
}
