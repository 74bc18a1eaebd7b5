package domain

// Default shipping terms, in whole kronor.
const (
	DefaultFreeShippingThreshold int64 = 500
	DefaultShippingFee           int64 = 99
)

// ShippingPolicy decides the shipping fee for a subtotal.
type ShippingPolicy struct {
	// FreeThreshold is the subtotal from which shipping is free.
	FreeThreshold int64
	FlatFee       int64
}

// DefaultShippingPolicy returns free shipping from 500 kr, otherwise 99 kr.
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: DefaultFreeShippingThreshold,
		FlatFee:       DefaultShippingFee,
	}
}

// Fee returns the shipping fee for subtotal.
func (p ShippingPolicy) Fee(subtotal int64) int64 {
	if subtotal >= p.FreeThreshold {
		return 0
	}
	return p.FlatFee
}

// Summary holds the figures shown at checkout.
type Summary struct {
	Subtotal int64
	Shipping int64
	Total    int64
}

// Summarize computes shipping and the grand total for subtotal.
func Summarize(subtotal int64, policy ShippingPolicy) Summary {
	shipping := policy.Fee(subtotal)
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
