package domain

import "testing"

func mustItem(t *testing.T, p ItemParams) *Item {
	t.Helper()
	item, err := NewItem(p)
	if err != nil {
		t.Fatalf("NewItem(%s): %v", p.Slug, err)
	}
	return item
}

func kattParams() ItemParams {
	return ItemParams{
		ID:       "1",
		Name:     "Katt",
		Slug:     "katt",
		Category: CategoryStandard,
		Prices:   PerVariant{S: 499, M: 799, L: 1199},
		Stock:    PerVariant{S: 8, M: 5, L: 3},
	}
}
