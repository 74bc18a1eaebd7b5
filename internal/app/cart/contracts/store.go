package contracts

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists for a key.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// SnapshotStore is durable key-value storage for serialized carts.
// Payloads are opaque to the store.
type SnapshotStore interface {
	// Load returns the payload stored under key, or ErrSnapshotNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the payload stored under key.
	Save(ctx context.Context, key string, payload []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
