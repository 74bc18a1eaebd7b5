package domain

import "errors"

// Domain errors as sentinel values
var (
	// Item errors
	ErrItemNotFound    = errors.New("item not found")
	ErrEmptyItemID     = errors.New("item id cannot be empty")
	ErrEmptyName       = errors.New("item name cannot be empty")
	ErrEmptySlug       = errors.New("item slug cannot be empty")
	ErrInvalidCategory = errors.New("item category must be standard or exotic")
	ErrNegativePrice   = errors.New("item price cannot be negative")
	ErrNegativeStock   = errors.New("item stock cannot be negative")

	// Catalog errors
	ErrDuplicateSlug = errors.New("duplicate item slug in catalog")
	ErrDuplicateID   = errors.New("duplicate item id in catalog")
)
