package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/sessions"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Request validation errors raised by the handlers themselves.
var (
	errInvalidBody     = errors.New("invalid JSON body")
	errInvalidVariant  = errors.New("variant must be S, M or L")
	errInvalidQuantity = errors.New("quantity must be a positive number")
	errOutOfStock      = errors.New("variant is out of stock")
)

// handleError converts domain and request errors to HTTP responses.
func handleError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, catalog.ErrItemNotFound):
		respondError(w, logger, http.StatusNotFound, "item_not_found", "item not found")

	case errors.Is(err, errInvalidBody):
		respondError(w, logger, http.StatusBadRequest, "invalid_request", err.Error())

	case errors.Is(err, errInvalidVariant):
		respondError(w, logger, http.StatusBadRequest, "invalid_variant", err.Error())

	case errors.Is(err, errInvalidQuantity):
		respondError(w, logger, http.StatusBadRequest, "invalid_quantity", err.Error())

	case errors.Is(err, sessions.ErrEmptyClientID):
		respondError(w, logger, http.StatusBadRequest, "missing_client", "missing client id")

	case errors.Is(err, errOutOfStock):
		respondError(w, logger, http.StatusConflict, "out_of_stock", err.Error())

	case errors.Is(err, cart.ErrEmptyCart):
		respondError(w, logger, http.StatusConflict, "empty_cart", "cart is empty")

	default:
		logger.Error("request failed", zap.Error(err))
		respondError(w, logger, http.StatusInternalServerError, "internal", "internal server error")
	}
}
