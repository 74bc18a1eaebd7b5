package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_item"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/search_items"
)

// CatalogHandler serves catalog browsing.
type CatalogHandler struct {
	search   *search_items.Query
	getItem  *get_item.Query
	pageSize int
	logger   *zap.Logger
}

// NewCatalogHandler creates a CatalogHandler. pageSize <= 0 selects the
// query's default.
func NewCatalogHandler(search *search_items.Query, getItem *get_item.Query, pageSize int, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		search:   search,
		getItem:  getItem,
		pageSize: pageSize,
		logger:   logger,
	}
}

// ListItems handles GET /api/v1/items.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter, page := search_items.ParseParams(r.URL.Query())
	res := h.search.Execute(filter, page, h.pageSize)

	respondJSON(w, h.logger, http.StatusOK, toListItemsResponse(res, filter))
}

// GetItem handles GET /api/v1/items/{slug}.
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.getItem.Execute(&get_item.Request{Slug: chi.URLParam(r, "slug")})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toItemDTO(item))
}
