package search_items

import "github.com/light-bringer/storefront-service/internal/app/catalog/domain"

// DefaultPageSize is the number of items per result page.
const DefaultPageSize = 8

// Default price bounds; together they span every catalog price.
const (
	DefaultPriceMin int64 = 0
	DefaultPriceMax int64 = 100000
)

// CategoryFilter restricts results to one category; CategoryAny disables it.
type CategoryFilter string

const (
	CategoryAny      CategoryFilter = "any"
	CategoryStandard CategoryFilter = CategoryFilter(domain.CategoryStandard)
	CategoryExotic   CategoryFilter = CategoryFilter(domain.CategoryExotic)
)

// VariantFilter requires stock in one variant; VariantAny disables it.
type VariantFilter string

const (
	VariantAny VariantFilter = "any"
	VariantS   VariantFilter = VariantFilter(domain.VariantS)
	VariantM   VariantFilter = VariantFilter(domain.VariantM)
	VariantL   VariantFilter = VariantFilter(domain.VariantL)
)

// SortOrder selects the result ordering.
type SortOrder string

const (
	SortRecommended SortOrder = "recommended"
	SortPriceAsc    SortOrder = "price_asc"
	SortPriceDesc   SortOrder = "price_desc"
	SortNameAsc     SortOrder = "name_asc"
)

// FilterSpec is the combined search, category, variant, price range and sort
// criteria for a catalog query.
type FilterSpec struct {
	Search   string
	Category CategoryFilter
	Variant  VariantFilter
	PriceMin int64
	PriceMax int64
	Sort     SortOrder
}

// DefaultFilterSpec matches every item in catalog order.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Category: CategoryAny,
		Variant:  VariantAny,
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		Sort:     SortRecommended,
	}
}
