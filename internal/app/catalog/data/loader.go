// Package data loads the static catalog the shop is started with.
package data

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// document mirrors the YAML layout of a catalog file.
type document struct {
	Items []itemRecord `yaml:"items"`
}

type itemRecord struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Slug        string            `yaml:"slug"`
	Category    string            `yaml:"category"`
	Description string            `yaml:"description"`
	Image       string            `yaml:"image"`
	Price       domain.PerVariant `yaml:"price"`
	Stock       domain.PerVariant `yaml:"stock"`
}

// Load parses the catalog compiled into the binary.
func Load() (*domain.Catalog, error) {
	return Parse(embeddedCatalog)
}

// LoadFile parses a catalog file supplied by the operator.
func LoadFile(path string) (*domain.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog document. Unknown fields are rejected so that
// a typo in a price or stock key does not silently become zero.
func Parse(raw []byte) (*domain.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	items := make([]*domain.Item, 0, len(doc.Items))
	for i, rec := range doc.Items {
		category, ok := domain.ParseCategory(rec.Category)
		if !ok {
			return nil, fmt.Errorf("catalog item %d (%s): %w", i, rec.Slug, domain.ErrInvalidCategory)
		}

		item, err := domain.NewItem(domain.ItemParams{
			ID:          rec.ID,
			Name:        rec.Name,
			Slug:        rec.Slug,
			Category:    category,
			Description: rec.Description,
			ImageURL:    rec.Image,
			Prices:      rec.Price,
			Stock:       rec.Stock,
		})
		if err != nil {
			return nil, fmt.Errorf("catalog item %d (%s): %w", i, rec.Slug, err)
		}
		items = append(items, item)
	}

	return domain.NewCatalog(items)
}
