// Package manager holds one client's cart in memory and keeps its durable
// copy current.
//
// A Manager is opened from the snapshot store, applies every mutation to the
// in-memory cart first and then writes the new snapshot. A failed write is
// logged and otherwise ignored: the in-memory cart stays authoritative until
// the next successful write.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/snapshot"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

var (
	ErrMissingKey     = errors.New("cart key is required")
	ErrMissingCatalog = errors.New("catalog is required")
	ErrMissingStore   = errors.New("snapshot store is required")
)

// Options configures Open. Clock, Logger and Shipping may be left zero.
type Options struct {
	Key      string
	Catalog  *catalog.Catalog
	Store    contracts.SnapshotStore
	Clock    clock.Clock
	Logger   *zap.Logger
	Shipping cart.ShippingPolicy
}

// View is a consistent read of the cart taken under one lock.
type View struct {
	Lines      []cart.Line
	TotalItems int
	TotalPrice int64
	Summary    cart.Summary
}

// Manager is the persisted cart of one client. It is safe for concurrent use.
type Manager struct {
	key      string
	catalog  *catalog.Catalog
	store    contracts.SnapshotStore
	clock    clock.Clock
	logger   *zap.Logger
	shipping cart.ShippingPolicy

	mu   sync.Mutex
	cart *cart.Cart
}

// Open loads the cart stored under opts.Key. A missing, unreadable or
// unrecognised snapshot yields an empty cart.
func Open(ctx context.Context, opts Options) (*Manager, error) {
	switch {
	case opts.Key == "":
		return nil, ErrMissingKey
	case opts.Catalog == nil:
		return nil, ErrMissingCatalog
	case opts.Store == nil:
		return nil, ErrMissingStore
	}

	m := &Manager{
		key:      opts.Key,
		catalog:  opts.Catalog,
		store:    opts.Store,
		clock:    opts.Clock,
		logger:   opts.Logger,
		shipping: opts.Shipping,
	}
	if m.clock == nil {
		m.clock = clock.NewSystem()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.shipping == (cart.ShippingPolicy{}) {
		m.shipping = cart.DefaultShippingPolicy()
	}
	m.logger = m.logger.With(zap.String("cart_key", m.key))

	m.cart = m.load(ctx)
	return m, nil
}

func (m *Manager) load(ctx context.Context) *cart.Cart {
	raw, err := m.store.Load(ctx, m.key)
	if errors.Is(err, contracts.ErrSnapshotNotFound) {
		return cart.NewCart()
	}
	if err != nil {
		m.logger.Warn("failed to load cart snapshot, starting empty", zap.Error(err))
		return cart.NewCart()
	}

	lines, savedAt, err := snapshot.Decode(raw)
	if err != nil {
		m.logger.Warn("discarding unreadable cart snapshot", zap.Error(err))
		return cart.NewCart()
	}

	restored := cart.Restore(lines)
	if restored.Len() != len(lines) {
		m.logger.Info("dropped invalid lines from cart snapshot",
			zap.Int("stored", len(lines)),
			zap.Int("kept", restored.Len()))
	}
	m.logger.Debug("cart loaded",
		zap.Int("lines", restored.Len()),
		zap.Time("saved_at", savedAt))
	return restored
}

// Key returns the storage key the cart is persisted under.
func (m *Manager) Key() string {
	return m.key
}

// AddItem adds qty units of item in variant v. The resulting line quantity
// is clamped to cart.MaxQuantity. Stock is not checked.
func (m *Manager) AddItem(ctx context.Context, item *catalog.Item, v catalog.Variant, qty int) {
	m.mutate(ctx, "add_item", func(c *cart.Cart) {
		c.Add(item, v, qty)
	})
}

// UpdateQuantity sets the quantity of an existing line; qty <= 0 removes it.
func (m *Manager) UpdateQuantity(ctx context.Context, slug string, v catalog.Variant, qty int) {
	m.mutate(ctx, "update_quantity", func(c *cart.Cart) {
		c.SetQuantity(slug, v, qty)
	})
}

// UpdateVariant moves a line to another variant at that variant's current
// catalog price. A slug missing from the catalog leaves the cart untouched.
func (m *Manager) UpdateVariant(ctx context.Context, slug string, from, to catalog.Variant) {
	item, ok := m.catalog.ItemBySlug(slug)
	if !ok {
		m.logger.Debug("variant change for unknown item ignored", zap.String("slug", slug))
		return
	}
	m.mutate(ctx, "update_variant", func(c *cart.Cart) {
		c.ChangeVariant(item, from, to)
	})
}

// ChangeVariantWithinStock is UpdateVariant for callers that respect stock:
// a target variant without stock is refused, and a quantity above the target
// variant's stock is lowered to it after the move.
func (m *Manager) ChangeVariantWithinStock(ctx context.Context, slug string, from, to catalog.Variant) {
	if from == to {
		return
	}
	item, ok := m.catalog.ItemBySlug(slug)
	if !ok {
		return
	}
	stock := item.MaxOrderQuantity(to)
	if stock <= 0 {
		m.logger.Debug("variant change to sold out variant ignored",
			zap.String("slug", slug),
			zap.String("variant", string(to)))
		return
	}

	m.mutate(ctx, "change_variant_within_stock", func(c *cart.Cart) {
		if _, ok := c.Line(slug, from); !ok {
			return
		}
		c.ChangeVariant(item, from, to)
		if line, ok := c.Line(slug, to); ok && line.Quantity > stock {
			c.SetQuantity(slug, to, stock)
		}
	})
}

// RemoveItem deletes a line.
func (m *Manager) RemoveItem(ctx context.Context, slug string, v catalog.Variant) {
	m.mutate(ctx, "remove_item", func(c *cart.Cart) {
		c.Remove(slug, v)
	})
}

// ClearCart deletes every line.
func (m *Manager) ClearCart(ctx context.Context) {
	m.mutate(ctx, "clear_cart", func(c *cart.Cart) {
		c.Clear()
	})
}

// TotalItems is the number of units in the cart.
func (m *Manager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.TotalItems()
}

// TotalPrice is the cart subtotal.
func (m *Manager) TotalPrice() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.TotalPrice()
}

// Lines returns a copy of the cart lines.
func (m *Manager) Lines() []cart.Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Lines()
}

// Line returns the line for (slug, v).
func (m *Manager) Line(slug string, v catalog.Variant) (cart.Line, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Line(slug, v)
}

// Summary returns subtotal, shipping and total for the current cart.
func (m *Manager) Summary() cart.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cart.Summarize(m.cart.TotalPrice(), m.shipping)
}

// View returns lines and totals in one consistent read.
func (m *Manager) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	subtotal := m.cart.TotalPrice()
	return View{
		Lines:      m.cart.Lines(),
		TotalItems: m.cart.TotalItems(),
		TotalPrice: subtotal,
		Summary:    cart.Summarize(subtotal, m.shipping),
	}
}

// Checkout hands fn a consistent view and clears the cart if fn succeeds.
func (m *Manager) Checkout(ctx context.Context, fn func(View) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subtotal := m.cart.TotalPrice()
	view := View{
		Lines:      m.cart.Lines(),
		TotalItems: m.cart.TotalItems(),
		TotalPrice: subtotal,
		Summary:    cart.Summarize(subtotal, m.shipping),
	}
	if err := fn(view); err != nil {
		return err
	}

	m.cart.Clear()
	m.persistLocked(ctx, "checkout")
	return nil
}

// Close writes the cart one last time. Unlike mutations, it reports a
// failed write so shutdown can surface it.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.save(ctx); err != nil {
		return fmt.Errorf("failed to flush cart %s: %w", m.key, err)
	}
	return nil
}

func (m *Manager) mutate(ctx context.Context, op string, fn func(*cart.Cart)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(m.cart)
	m.persistLocked(ctx, op)
}

// persistLocked is the write hook run after every mutation.
func (m *Manager) persistLocked(ctx context.Context, op string) {
	if err := m.save(ctx); err != nil {
		m.logger.Error("failed to persist cart",
			zap.String("op", op),
			zap.Error(err))
	}
}

func (m *Manager) save(ctx context.Context) error {
	raw, err := snapshot.Encode(m.cart.Lines(), m.clock.Now())
	if err != nil {
		return err
	}
	return m.store.Save(ctx, m.key, raw)
}
