package domain

import "strings"

// Category classifies an item.
type Category string

const (
	CategoryStandard Category = "standard"
	CategoryExotic   Category = "exotic"
)

// ParseCategory accepts the English names and the shop's wire names
// ("normal", "exotisk").
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "normal":
		return CategoryStandard, true
	case "exotic", "exotisk":
		return CategoryExotic, true
	}
	return "", false
}

// WireName returns the name used in shop URLs and the catalog source.
func (c Category) WireName() string {
	switch c {
	case CategoryStandard:
		return "normal"
	case CategoryExotic:
		return "exotisk"
	}
	return string(c)
}
