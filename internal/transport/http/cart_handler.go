package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/manager"
	"github.com/light-bringer/storefront-service/internal/app/cart/sessions"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_item"
)

// CartHandler serves the shopper's cart.
type CartHandler struct {
	sessions *sessions.Registry
	getItem  *get_item.Query
	logger   *zap.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(registry *sessions.Registry, getItem *get_item.Query, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		sessions: registry,
		getItem:  getItem,
		logger:   logger,
	}
}

// AddItemRequestDTO is the body of POST /api/v1/cart/items.
type AddItemRequestDTO struct {
	Slug     string `json:"slug"`
	Variant  string `json:"variant"`
	Quantity *int   `json:"quantity,omitempty"`
}

// UpdateQuantityRequestDTO is the body of PATCH /api/v1/cart/items/{slug}/{variant}.
type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

// ChangeVariantRequestDTO is the body of PUT /api/v1/cart/items/{slug}/{variant}/variant.
type ChangeVariantRequestDTO struct {
	Variant string `json:"variant"`
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	m, err := h.manager(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toCartResponse(m.View()))
}

// AddItem handles POST /api/v1/cart/items. The stock check happens here:
// the cart itself accepts any quantity and clamps it.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}

	item, err := h.getItem.Execute(&get_item.Request{Slug: req.Slug})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	variant, ok := catalog.ParseVariant(req.Variant)
	if !ok {
		handleError(w, h.logger, errInvalidVariant)
		return
	}
	qty := 1
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			handleError(w, h.logger, errInvalidQuantity)
			return
		}
		qty = *req.Quantity
	}
	if item.MaxOrderQuantity(variant) == 0 {
		handleError(w, h.logger, errOutOfStock)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	m.AddItem(r.Context(), item, variant, qty)

	respondJSON(w, h.logger, http.StatusCreated, toCartResponse(m.View()))
}

// UpdateQuantity handles PATCH /api/v1/cart/items/{slug}/{variant}.
// A quantity of zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	variant, ok := catalog.ParseVariant(chi.URLParam(r, "variant"))
	if !ok {
		handleError(w, h.logger, errInvalidVariant)
		return
	}
	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	if req.Quantity == nil {
		handleError(w, h.logger, errInvalidQuantity)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	m.UpdateQuantity(r.Context(), chi.URLParam(r, "slug"), variant, *req.Quantity)

	respondJSON(w, h.logger, http.StatusOK, toCartResponse(m.View()))
}

// ChangeVariant handles PUT /api/v1/cart/items/{slug}/{variant}/variant.
func (h *CartHandler) ChangeVariant(w http.ResponseWriter, r *http.Request) {
	from, ok := catalog.ParseVariant(chi.URLParam(r, "variant"))
	if !ok {
		handleError(w, h.logger, errInvalidVariant)
		return
	}
	var req ChangeVariantRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	to, ok := catalog.ParseVariant(req.Variant)
	if !ok {
		handleError(w, h.logger, errInvalidVariant)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	m.ChangeVariantWithinStock(r.Context(), chi.URLParam(r, "slug"), from, to)

	respondJSON(w, h.logger, http.StatusOK, toCartResponse(m.View()))
}

// RemoveItem handles DELETE /api/v1/cart/items/{slug}/{variant}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	variant, ok := catalog.ParseVariant(chi.URLParam(r, "variant"))
	if !ok {
		handleError(w, h.logger, errInvalidVariant)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	m.RemoveItem(r.Context(), chi.URLParam(r, "slug"), variant)

	respondJSON(w, h.logger, http.StatusOK, toCartResponse(m.View()))
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	m, err := h.manager(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	m.ClearCart(r.Context())

	respondJSON(w, h.logger, http.StatusOK, toCartResponse(m.View()))
}

func (h *CartHandler) manager(r *http.Request) (*manager.Manager, error) {
	return h.sessions.Get(r.Context(), clientIDFromContext(r.Context()))
}
