package http

import (
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/manager"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/place_order"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/search_items"
)

// VariantDTO is one size of an item with its own price and availability.
type VariantDTO struct {
	Variant          string `json:"variant"`
	Label            string `json:"label"`
	Price            int64  `json:"price"`
	PriceFormatted   string `json:"priceFormatted"`
	Stock            int64  `json:"stock"`
	Status           string `json:"status"`
	MaxOrderQuantity int    `json:"maxOrderQuantity"`
}

// ItemDTO is a catalog item.
type ItemDTO struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Slug              string       `json:"slug"`
	Category          string       `json:"category"`
	Description       string       `json:"description"`
	ImageURL          string       `json:"imageUrl"`
	MinPrice          int64        `json:"minPrice"`
	MinPriceFormatted string       `json:"minPriceFormatted"`
	InStock           bool         `json:"inStock"`
	Variants          []VariantDTO `json:"variants"`
}

// ListItemsResponse is one page of catalog results.
type ListItemsResponse struct {
	Items        []ItemDTO `json:"items"`
	TotalMatched int       `json:"totalMatched"`
	TotalPages   int       `json:"totalPages"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`
	// Query is the canonical query string for this page.
	Query string `json:"query"`
}

// LineDTO is a cart line.
type LineDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ImageURL  string `json:"imageUrl"`
	Category  string `json:"category"`
	Variant   string `json:"variant"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// SummaryDTO holds checkout figures, raw and formatted.
type SummaryDTO struct {
	Subtotal          int64  `json:"subtotal"`
	Shipping          int64  `json:"shipping"`
	Total             int64  `json:"total"`
	SubtotalFormatted string `json:"subtotalFormatted"`
	ShippingFormatted string `json:"shippingFormatted"`
	TotalFormatted    string `json:"totalFormatted"`
}

// CartResponse is the current cart.
type CartResponse struct {
	Lines      []LineDTO  `json:"lines"`
	TotalItems int        `json:"totalItems"`
	TotalPrice int64      `json:"totalPrice"`
	Summary    SummaryDTO `json:"summary"`
}

// ConfirmationResponse is returned after a successful checkout.
type ConfirmationResponse struct {
	OrderID  string     `json:"orderId"`
	Lines    []LineDTO  `json:"lines"`
	Summary  SummaryDTO `json:"summary"`
	PlacedAt string     `json:"placedAt"`
}

func toItemDTO(item *catalog.Item) ItemDTO {
	variants := make([]VariantDTO, 0, len(catalog.AllVariants))
	for _, v := range catalog.AllVariants {
		price := item.Prices().Of(v)
		variants = append(variants, VariantDTO{
			Variant:          string(v),
			Label:            v.Label(),
			Price:            price,
			PriceFormatted:   cart.FormatPrice(price),
			Stock:            item.Stock().Of(v),
			Status:           string(item.StockStatus(v)),
			MaxOrderQuantity: item.MaxOrderQuantity(v),
		})
	}

	return ItemDTO{
		ID:                item.ID(),
		Name:              item.Name(),
		Slug:              item.Slug(),
		Category:          item.Category().WireName(),
		Description:       item.Description(),
		ImageURL:          item.ImageURL(),
		MinPrice:          item.MinPrice(),
		MinPriceFormatted: cart.FormatPrice(item.MinPrice()),
		InStock:           item.InStock(),
		Variants:          variants,
	}
}

func toListItemsResponse(res *search_items.Result, filter search_items.FilterSpec) ListItemsResponse {
	items := make([]ItemDTO, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, toItemDTO(item))
	}

	return ListItemsResponse{
		Items:        items,
		TotalMatched: res.TotalMatched,
		TotalPages:   res.TotalPages,
		Page:         res.Page,
		PageSize:     res.PageSize,
		Query:        search_items.EncodeParams(filter, res.Page).Encode(),
	}
}

func toLineDTOs(lines []cart.Line) []LineDTO {
	out := make([]LineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineDTO{
			ID:        l.ItemID,
			Name:      l.Name,
			Slug:      l.Slug,
			ImageURL:  l.ImageURL,
			Category:  l.Category.WireName(),
			Variant:   string(l.Variant),
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return out
}

func toSummaryDTO(s cart.Summary) SummaryDTO {
	return SummaryDTO{
		Subtotal:          s.Subtotal,
		Shipping:          s.Shipping,
		Total:             s.Total,
		SubtotalFormatted: cart.FormatPrice(s.Subtotal),
		ShippingFormatted: cart.FormatPrice(s.Shipping),
		TotalFormatted:    cart.FormatPrice(s.Total),
	}
}

func toCartResponse(v manager.View) CartResponse {
	return CartResponse{
		Lines:      toLineDTOs(v.Lines),
		TotalItems: v.TotalItems,
		TotalPrice: v.TotalPrice,
		Summary:    toSummaryDTO(v.Summary),
	}
}

func toConfirmationResponse(c *place_order.Confirmation) ConfirmationResponse {
	return ConfirmationResponse{
		OrderID:  c.OrderID,
		Lines:    toLineDTOs(c.Lines),
		Summary:  toSummaryDTO(c.Summary),
		PlacedAt: c.PlacedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
