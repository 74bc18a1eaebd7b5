package domain

import "fmt"

// MaxOrderQuantity is the largest quantity of one variant a cart line may hold.
const MaxOrderQuantity = 10

// lowStockThreshold is the stock level at or below which a variant is "low".
const lowStockThreshold = 2

// StockStatus is the availability badge shown for a variant.
type StockStatus string

const (
	StockOut StockStatus = "out_of_stock"
	StockLow StockStatus = "low_stock"
	StockIn  StockStatus = "in_stock"
)

// ItemParams carries the fields needed to build an Item.
type ItemParams struct {
	ID          string
	Name        string
	Slug        string
	Category    Category
	Description string
	ImageURL    string
	Prices      PerVariant
	Stock       PerVariant
}

// Item is an immutable catalog entry with per-variant price and stock.
type Item struct {
	id          string
	name        string
	slug        string
	category    Category
	description string
	imageURL    string
	prices      PerVariant
	stock       PerVariant
}

// NewItem validates params and builds an Item.
func NewItem(p ItemParams) (*Item, error) {
	switch {
	case p.ID == "":
		return nil, ErrEmptyItemID
	case p.Name == "":
		return nil, ErrEmptyName
	case p.Slug == "":
		return nil, ErrEmptySlug
	case p.Category != CategoryStandard && p.Category != CategoryExotic:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	case p.Prices.anyNegative():
		return nil, ErrNegativePrice
	case p.Stock.anyNegative():
		return nil, ErrNegativeStock
	}

	return &Item{
		id:          p.ID,
		name:        p.Name,
		slug:        p.Slug,
		category:    p.Category,
		description: p.Description,
		imageURL:    p.ImageURL,
		prices:      p.Prices,
		stock:       p.Stock,
	}, nil
}

// Getters
func (i *Item) ID() string          { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Slug() string        { return i.slug }
func (i *Item) Category() Category  { return i.category }
func (i *Item) Description() string { return i.description }
func (i *Item) ImageURL() string    { return i.imageURL }
func (i *Item) Prices() PerVariant  { return i.prices }
func (i *Item) Stock() PerVariant   { return i.stock }

// MinPrice is the lowest price across variants; filtering and price sorting use it.
func (i *Item) MinPrice() int64 {
	return i.prices.Min()
}

// TotalStock sums stock over all variants.
func (i *Item) TotalStock() int64 {
	return i.stock.Sum()
}

// InStock reports whether any variant has stock.
func (i *Item) InStock() bool {
	return i.TotalStock() > 0
}

// AvailableVariants returns the variants with stock, in S, M, L order.
func (i *Item) AvailableVariants() []Variant {
	out := make([]Variant, 0, len(AllVariants))
	for _, v := range AllVariants {
		if i.stock.Of(v) > 0 {
			out = append(out, v)
		}
	}
	return out
}

// MaxOrderQuantity is the most a shopper can pick for v: the stock, capped at 10.
func (i *Item) MaxOrderQuantity(v Variant) int {
	return int(min(i.stock.Of(v), MaxOrderQuantity))
}

// StockStatus classifies the stock of v.
func (i *Item) StockStatus(v Variant) StockStatus {
	switch n := i.stock.Of(v); {
	case n == 0:
		return StockOut
	case n <= lowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}
