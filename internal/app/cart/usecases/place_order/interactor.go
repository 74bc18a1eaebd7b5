package place_order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/manager"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Confirmation is what the shopper sees after placing an order.
type Confirmation struct {
	OrderID  string
	Lines    []cart.Line
	Summary  cart.Summary
	PlacedAt time.Time
}

// Interactor handles the place order use case. No payment is taken: placing
// an order records the cart's contents in the confirmation and empties it.
type Interactor struct {
	clock  clock.Clock
	logger *zap.Logger
}

// NewInteractor creates a new place order interactor.
func NewInteractor(clk clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		clock:  clk,
		logger: logger,
	}
}

// Execute turns the cart held by m into an order. An empty cart fails with
// cart.ErrEmptyCart and is left as it was.
func (i *Interactor) Execute(ctx context.Context, m *manager.Manager) (*Confirmation, error) {
	var confirmation *Confirmation

	err := m.Checkout(ctx, func(view manager.View) error {
		if len(view.Lines) == 0 {
			return cart.ErrEmptyCart
		}
		confirmation = &Confirmation{
			OrderID:  uuid.New().String(),
			Lines:    view.Lines,
			Summary:  view.Summary,
			PlacedAt: i.clock.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("order placed",
		zap.String("order_id", confirmation.OrderID),
		zap.String("cart_key", m.Key()),
		zap.Int("lines", len(confirmation.Lines)),
		zap.Int64("total", confirmation.Summary.Total))

	return confirmation, nil
}
