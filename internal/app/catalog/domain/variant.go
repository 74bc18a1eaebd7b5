package domain

import "strings"

// Variant is one of the three size classes an item is sold in.
type Variant string

const (
	VariantS Variant = "S"
	VariantM Variant = "M"
	VariantL Variant = "L"
)

// AllVariants lists the variants in display order.
var AllVariants = []Variant{VariantS, VariantM, VariantL}

// ParseVariant accepts "S", "M" or "L" in any case.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(strings.ToUpper(strings.TrimSpace(s))) {
	case VariantS:
		return VariantS, true
	case VariantM:
		return VariantM, true
	case VariantL:
		return VariantL, true
	}
	return "", false
}

// Valid reports whether v is S, M or L.
func (v Variant) Valid() bool {
	return v == VariantS || v == VariantM || v == VariantL
}

// Label returns the Swedish shop label for the variant.
func (v Variant) Label() string {
	switch v {
	case VariantS:
		return "Liten"
	case VariantM:
		return "Medium"
	case VariantL:
		return "Stor"
	}
	return string(v)
}

// PerVariant holds one non-negative amount per variant (a price or a stock count).
type PerVariant struct {
	S int64 `yaml:"S" json:"S"`
	M int64 `yaml:"M" json:"M"`
	L int64 `yaml:"L" json:"L"`
}

// Of returns the amount for v, or zero for an unknown variant.
func (p PerVariant) Of(v Variant) int64 {
	switch v {
	case VariantS:
		return p.S
	case VariantM:
		return p.M
	case VariantL:
		return p.L
	}
	return 0
}

// Min returns the smallest amount across the variants.
func (p PerVariant) Min() int64 {
	return min(p.S, p.M, p.L)
}

// Sum returns the total across the variants.
func (p PerVariant) Sum() int64 {
	return p.S + p.M + p.L
}

func (p PerVariant) anyNegative() bool {
	return p.S < 0 || p.M < 0 || p.L < 0
}
