package get_item

import (
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Request contains the slug of the item to retrieve.
type Request struct {
	Slug string
}

// Query handles the get item query use case.
type Query struct {
	catalog *domain.Catalog
}

// NewQuery creates a new get item query.
func NewQuery(catalog *domain.Catalog) *Query {
	return &Query{
		catalog: catalog,
	}
}

// Execute looks an item up by slug.
func (q *Query) Execute(req *Request) (*domain.Item, error) {
	item, ok := q.catalog.ItemBySlug(req.Slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, req.Slug)
	}
	return item, nil
}
