// Package snapshot is the persisted form of a cart.
//
// A snapshot is a JSON document tagged with a format version:
//
//	{"version":1,"savedAt":"2025-03-01T12:00:00Z","lines":[{"id":"1","name":"Katt",...}]}
//
// Readers reject versions they do not know rather than guessing at the layout.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// Namespace prefixes every cart key.
const Namespace = "djurshoppen-cart"

// Version is the format written by Encode.
const Version = 1

var (
	ErrCorrupt            = errors.New("cart snapshot is corrupt")
	ErrUnsupportedVersion = errors.New("cart snapshot version is not supported")
)

// Key returns the storage key for a client's cart.
func Key(clientID string) string {
	return Namespace + ":" + clientID
}

type record struct {
	Version int          `json:"version"`
	SavedAt time.Time    `json:"savedAt"`
	Lines   []lineRecord `json:"lines"`
}

type lineRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
	Variant  string `json:"variant"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Encode serializes lines as a current-version snapshot.
func Encode(lines []cart.Line, savedAt time.Time) ([]byte, error) {
	rec := record{
		Version: Version,
		SavedAt: savedAt.UTC(),
		Lines:   make([]lineRecord, 0, len(lines)),
	}
	for _, l := range lines {
		rec.Lines = append(rec.Lines, lineRecord{
			ID:       l.ItemID,
			Name:     l.Name,
			Slug:     l.Slug,
			ImageURL: l.ImageURL,
			Category: l.Category.WireName(),
			Variant:  string(l.Variant),
			Price:    l.UnitPrice,
			Quantity: l.Quantity,
		})
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	return raw, nil
}

// Decode parses a snapshot. The returned lines are as stored; callers rebuild
// a cart with cart.Restore, which drops or clamps anything out of range.
func Decode(raw []byte) ([]cart.Line, time.Time, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.Version != Version {
		return nil, time.Time{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
	}

	lines := make([]cart.Line, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		category, ok := catalog.ParseCategory(l.Category)
		if !ok {
			category = catalog.Category(l.Category)
		}
		lines = append(lines, cart.Line{
			ItemID:    l.ID,
			Name:      l.Name,
			Slug:      l.Slug,
			ImageURL:  l.ImageURL,
			Category:  category,
			Variant:   catalog.Variant(l.Variant),
			UnitPrice: l.Price,
			Quantity:  l.Quantity,
		})
	}

	return lines, rec.SavedAt, nil
}
