package domain

import "fmt"

// Catalog is the ordered, read-only list of items loaded at startup.
// Order is the shop's "recommended" order.
type Catalog struct {
	items  []*Item
	bySlug map[string]*Item
	byID   map[string]*Item
}

// NewCatalog indexes items by slug and id, rejecting duplicates of either.
func NewCatalog(items []*Item) (*Catalog, error) {
	c := &Catalog{
		items:  make([]*Item, 0, len(items)),
		bySlug: make(map[string]*Item, len(items)),
		byID:   make(map[string]*Item, len(items)),
	}

	for _, item := range items {
		if _, dup := c.bySlug[item.Slug()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, item.Slug())
		}
		if _, dup := c.byID[item.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, item.ID())
		}
		c.items = append(c.items, item)
		c.bySlug[item.Slug()] = item
		c.byID[item.ID()] = item
	}

	return c, nil
}

// Items returns the items in catalog order. The slice is a copy.
func (c *Catalog) Items() []*Item {
	return append([]*Item(nil), c.items...)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ItemBySlug looks an item up by its unique slug.
func (c *Catalog) ItemBySlug(slug string) (*Item, bool) {
	item, ok := c.bySlug[slug]
	return item, ok
}

// ItemByID looks an item up by its identifier.
func (c *Catalog) ItemByID(id string) (*Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}
