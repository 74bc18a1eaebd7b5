package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	policy := DefaultShippingPolicy()

	tests := []struct {
		name     string
		subtotal int64
		want     Summary
	}{
		{"below threshold pays shipping", 450, Summary{Subtotal: 450, Shipping: 99, Total: 549}},
		{"at threshold ships free", 500, Summary{Subtotal: 500, Shipping: 0, Total: 500}},
		{"one below threshold", 499, Summary{Subtotal: 499, Shipping: 99, Total: 598}},
		{"above threshold", 3995, Summary{Subtotal: 3995, Shipping: 0, Total: 3995}},
		{"empty cart", 0, Summary{Subtotal: 0, Shipping: 99, Total: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.subtotal, policy))
		})
	}
}

func TestShippingPolicy_Custom(t *testing.T) {
	p := ShippingPolicy{FreeThreshold: 1000, FlatFee: 49}
	assert.Equal(t, int64(49), p.Fee(999))
	assert.Equal(t, int64(0), p.Fee(1000))
}
