package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/sessions"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/place_order"
)

// CheckoutHandler turns carts into orders.
type CheckoutHandler struct {
	sessions   *sessions.Registry
	placeOrder *place_order.Interactor
	logger     *zap.Logger
}

// NewCheckoutHandler creates a CheckoutHandler.
func NewCheckoutHandler(registry *sessions.Registry, placeOrder *place_order.Interactor, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:   registry,
		placeOrder: placeOrder,
		logger:     logger,
	}
}

// PlaceOrder handles POST /api/v1/checkout.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	m, err := h.sessions.Get(r.Context(), clientIDFromContext(r.Context()))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	confirmation, err := h.placeOrder.Execute(r.Context(), m)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, toConfirmationResponse(confirmation))
}
