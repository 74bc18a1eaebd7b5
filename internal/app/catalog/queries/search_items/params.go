package search_items

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Query-string keys. They match the shop's existing links.
const (
	ParamSearch   = "search"
	ParamCategory = "kategori"
	ParamVariant  = "storlek"
	ParamPriceMin = "prisMin"
	ParamPriceMax = "prisMax"
	ParamSort     = "sort"
	ParamPage     = "page"
)

var sortWireNames = map[SortOrder]string{
	SortRecommended: "rekommenderat",
	SortPriceAsc:    "pris_asc",
	SortPriceDesc:   "pris_desc",
	SortNameAsc:     "namn_asc",
}

// ParseParams reads a FilterSpec and page number from a query string.
// Missing or malformed values fall back to their defaults.
func ParseParams(values url.Values) (FilterSpec, int) {
	f := DefaultFilterSpec()

	f.Search = strings.TrimSpace(values.Get(ParamSearch))

	if c, ok := domain.ParseCategory(values.Get(ParamCategory)); ok {
		f.Category = CategoryFilter(c)
	}
	if v, ok := domain.ParseVariant(values.Get(ParamVariant)); ok {
		f.Variant = VariantFilter(v)
	}
	if n, ok := parseInt(values.Get(ParamPriceMin)); ok {
		f.PriceMin = n
	}
	if n, ok := parseInt(values.Get(ParamPriceMax)); ok {
		f.PriceMax = n
	}
	f.Sort = ParseSort(values.Get(ParamSort))

	page := 1
	if n, ok := parseInt(values.Get(ParamPage)); ok && n > 1 {
		page = int(n)
	}

	return f, page
}

// EncodeParams is the inverse of ParseParams. Values equal to their default
// are omitted, so the default query encodes to an empty string.
func EncodeParams(f FilterSpec, page int) url.Values {
	values := url.Values{}

	if f.Search != "" {
		values.Set(ParamSearch, f.Search)
	}
	if f.Category != CategoryAny && f.Category != "" {
		values.Set(ParamCategory, domain.Category(f.Category).WireName())
	}
	if f.Variant != VariantAny && f.Variant != "" {
		values.Set(ParamVariant, string(f.Variant))
	}
	if f.PriceMin != DefaultPriceMin {
		values.Set(ParamPriceMin, strconv.FormatInt(f.PriceMin, 10))
	}
	if f.PriceMax != DefaultPriceMax {
		values.Set(ParamPriceMax, strconv.FormatInt(f.PriceMax, 10))
	}
	if f.Sort != SortRecommended && f.Sort != "" {
		values.Set(ParamSort, sortWireNames[f.Sort])
	}
	if page > 1 {
		values.Set(ParamPage, strconv.Itoa(page))
	}

	return values
}

// ParseSort maps a wire or English sort name to a SortOrder, defaulting to
// SortRecommended.
func ParseSort(s string) SortOrder {
	s = strings.ToLower(strings.TrimSpace(s))
	for order, wire := range sortWireNames {
		if s == wire || s == string(order) {
			return order
		}
	}
	return SortRecommended
}

func parseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
