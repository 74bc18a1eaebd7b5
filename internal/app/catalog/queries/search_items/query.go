package search_items

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Result is one page of a catalog query.
type Result struct {
	Items        []*domain.Item
	TotalMatched int
	// TotalPages is at least 1, even when nothing matched.
	TotalPages int
	// Page is the page actually returned after clamping.
	Page     int
	PageSize int
}

// Query filters, sorts and paginates a catalog. It holds no mutable state.
type Query struct {
	catalog *domain.Catalog
	locale  language.Tag
}

// NewQuery creates a query over catalog with Swedish name collation.
func NewQuery(catalog *domain.Catalog) *Query {
	return &Query{
		catalog: catalog,
		locale:  language.Swedish,
	}
}

// Execute returns page `page` of the items matching filter. A pageSize of zero
// or less selects DefaultPageSize; out-of-range pages clamp to the nearest
// valid page.
func (q *Query) Execute(filter FilterSpec, page, pageSize int) *Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	matched := q.filter(filter)
	q.sort(matched, filter.Sort)

	totalPages := max(1, (len(matched)+pageSize-1)/pageSize)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*pageSize, len(matched))
	end := min(page*pageSize, len(matched))

	return &Result{
		Items:        matched[start:end:end],
		TotalMatched: len(matched),
		TotalPages:   totalPages,
		Page:         page,
		PageSize:     pageSize,
	}
}

func (q *Query) filter(f FilterSpec) []*domain.Item {
	search := strings.ToLower(f.Search)
	out := make([]*domain.Item, 0, q.catalog.Len())

	for _, item := range q.catalog.Items() {
		if search != "" && !strings.Contains(strings.ToLower(item.Name()), search) {
			continue
		}
		if f.Category != CategoryAny && f.Category != "" && string(item.Category()) != string(f.Category) {
			continue
		}
		if f.Variant != VariantAny && f.Variant != "" && item.Stock().Of(domain.Variant(f.Variant)) <= 0 {
			continue
		}
		if minPrice := item.MinPrice(); minPrice < f.PriceMin || minPrice > f.PriceMax {
			continue
		}
		out = append(out, item)
	}

	return out
}

// sort orders items in place. Every ordering is stable so equal keys keep
// catalog order.
func (q *Query) sort(items []*domain.Item, order SortOrder) {
	switch order {
	case SortPriceAsc:
		slices.SortStableFunc(items, func(a, b *domain.Item) int {
			return cmp.Compare(a.MinPrice(), b.MinPrice())
		})
	case SortPriceDesc:
		slices.SortStableFunc(items, func(a, b *domain.Item) int {
			return cmp.Compare(b.MinPrice(), a.MinPrice())
		})
	case SortNameAsc:
		// a Collator keeps scratch buffers, so each call gets its own
		col := collate.New(q.locale)
		slices.SortStableFunc(items, func(a, b *domain.Item) int {
			return col.CompareString(a.Name(), b.Name())
		})
	}
}
