package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/snapshot"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// SpannerStore keeps snapshots in the carts table.
type SpannerStore struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_cart.Model
}

// NewSpannerStore creates a SpannerStore.
func NewSpannerStore(client *spanner.Client, c *committer.Committer) *SpannerStore {
	return &SpannerStore{
		client:    client,
		committer: c,
		model:     m_cart.NewModel(),
	}
}

var _ contracts.SnapshotStore = (*SpannerStore)(nil)

func (s *SpannerStore) Load(ctx context.Context, key string) ([]byte, error) {
	row, err := s.client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{key}, []string{m_cart.Payload})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, contracts.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var payload string
	if err := row.Column(0, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse cart snapshot: %w", err)
	}
	return []byte(payload), nil
}

func (s *SpannerStore) Save(ctx context.Context, key string, payload []byte) error {
	plan := committer.NewPlan()
	plan.Add(s.model.UpsertMut(&m_cart.Data{
		CartKey: key,
		Payload: string(payload),
	}))
	return s.committer.Apply(ctx, plan)
}

func (s *SpannerStore) Delete(ctx context.Context, key string) error {
	return s.DeleteMany(ctx, []string{key})
}

// DeleteMany removes all keys in one commit.
func (s *SpannerStore) DeleteMany(ctx context.Context, keys []string) error {
	plan := committer.NewPlan()
	for _, key := range keys {
		plan.Add(s.model.DeleteMut(key))
	}
	return s.committer.Apply(ctx, plan)
}

// ListStale returns up to limit cart keys last written before cutoff,
// oldest first.
func (s *SpannerStore) ListStale(ctx context.Context, cutoff time.Time, limit int64) ([]string, error) {
	stmt := query.From(m_cart.TableName).
		Select(m_cart.CartKey).
		Where(query.StartsWith(m_cart.CartKey, snapshot.Namespace+":")).
		Where(query.Lt(m_cart.UpdatedAt, cutoff)).
		OrderBy(m_cart.UpdatedAt, query.Asc).
		Limit(limit).
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var keys []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate stale carts: %w", err)
		}

		var key string
		if err := row.Columns(&key); err != nil {
			return nil, fmt.Errorf("failed to scan cart key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// CountStale counts carts last written before cutoff.
func (s *SpannerStore) CountStale(ctx context.Context, cutoff time.Time) (int64, error) {
	stmt := query.From(m_cart.TableName).
		Where(query.StartsWith(m_cart.CartKey, snapshot.Namespace+":")).
		Where(query.Lt(m_cart.UpdatedAt, cutoff)).
		Count().
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count stale carts: %w", err)
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to scan count: %w", err)
	}
	return count, nil
}
