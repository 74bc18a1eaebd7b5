package main

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

type fakeStaleCarts struct {
	updated   map[string]time.Time
	deleteErr error
	batches   int
}

func (f *fakeStaleCarts) stale(cutoff time.Time) []string {
	var keys []string
	for k, at := range f.updated {
		if at.Before(cutoff) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeStaleCarts) CountStale(_ context.Context, cutoff time.Time) (int64, error) {
	return int64(len(f.stale(cutoff))), nil
}

func (f *fakeStaleCarts) ListStale(_ context.Context, cutoff time.Time, limit int64) ([]string, error) {
	keys := f.stale(cutoff)
	if int64(len(keys)) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (f *fakeStaleCarts) DeleteMany(_ context.Context, keys []string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.batches++
	for _, k := range keys {
		delete(f.updated, k)
	}
	return nil
}

func TestCleanup(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now)
	old := now.AddDate(0, -2, 0)

	newStore := func() *fakeStaleCarts {
		return &fakeStaleCarts{updated: map[string]time.Time{
			"djurshoppen-cart:a": old,
			"djurshoppen-cart:b": old,
			"djurshoppen-cart:c": old,
			"djurshoppen-cart:d": now.Add(-time.Hour),
		}}
	}
	opts := options{retention: 30 * 24 * time.Hour, batchSize: 2}

	t.Run("deletes stale carts in batches", func(t *testing.T) {
		store := newStore()
		deleted, err := cleanup(context.Background(), zap.NewNop(), store, clk, opts)

		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
		assert.Equal(t, 2, store.batches)
		assert.Len(t, store.updated, 1)
		assert.Contains(t, store.updated, "djurshoppen-cart:d")
	})

	t.Run("dry run deletes nothing", func(t *testing.T) {
		store := newStore()
		dry := opts
		dry.dryRun = true

		deleted, err := cleanup(context.Background(), zap.NewNop(), store, clk, dry)
		require.NoError(t, err)
		assert.Zero(t, deleted)
		assert.Len(t, store.updated, 4)
	})

	t.Run("delete failure is returned", func(t *testing.T) {
		store := newStore()
		store.deleteErr = errors.New("boom")

		_, err := cleanup(context.Background(), zap.NewNop(), store, clk, opts)
		assert.EqualError(t, err, "boom")
	})

	t.Run("invalid batch size", func(t *testing.T) {
		bad := opts
		bad.batchSize = 0
		_, err := cleanup(context.Background(), zap.NewNop(), newStore(), clk, bad)
		assert.Error(t, err)
	})
}
