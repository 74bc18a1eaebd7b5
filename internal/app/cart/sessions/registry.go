// Package sessions keeps one open cart Manager per client.
package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/manager"
	"github.com/light-bringer/storefront-service/internal/app/cart/snapshot"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// ErrEmptyClientID is returned when a session is requested without a client id.
var ErrEmptyClientID = errors.New("client id cannot be empty")

// Options carries what every Manager is opened with.
type Options struct {
	Catalog  *catalog.Catalog
	Store    contracts.SnapshotStore
	Clock    clock.Clock
	Logger   *zap.Logger
	Shipping cart.ShippingPolicy

	// IdleTimeout is how long a session may go unused before EvictIdle
	// flushes and drops it. Zero disables idle eviction.
	IdleTimeout time.Duration
}

// Registry opens a client's cart on first use and hands out the same
// Manager afterwards. Concurrent first requests for one client share a
// single load.
type Registry struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*session
	sfg      singleflight.Group
}

type session struct {
	m        *manager.Manager
	lastSeen time.Time
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}
	return &Registry{
		opts:     opts,
		sessions: make(map[string]*session),
	}
}

// Get returns the Manager for clientID, opening it if needed.
func (r *Registry) Get(ctx context.Context, clientID string) (*manager.Manager, error) {
	if clientID == "" {
		return nil, ErrEmptyClientID
	}

	if m, ok := r.touch(clientID); ok {
		return m, nil
	}

	v, err, _ := r.sfg.Do(clientID, func() (interface{}, error) {
		if m, ok := r.touch(clientID); ok {
			return m, nil
		}

		// a caller that gives up must not leave its client with a cart
		// loaded from a cancelled read
		m, err := manager.Open(context.WithoutCancel(ctx), manager.Options{
			Key:      snapshot.Key(clientID),
			Catalog:  r.opts.Catalog,
			Store:    r.opts.Store,
			Clock:    r.opts.Clock,
			Logger:   r.opts.Logger,
			Shipping: r.opts.Shipping,
		})
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.sessions[clientID] = &session{m: m, lastSeen: r.opts.Clock.Now()}
		r.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*manager.Manager), nil
}

// touch returns the open Manager for clientID and marks it as used.
func (r *Registry) touch(clientID string) (*manager.Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[clientID]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.opts.Clock.Now()
	return s.m, true
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict flushes and forgets the session for clientID.
func (r *Registry) Evict(ctx context.Context, clientID string) error {
	r.mu.Lock()
	s, ok := r.sessions[clientID]
	delete(r.sessions, clientID)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return s.m.Close(ctx)
}

// EvictIdle flushes and drops every session unused for longer than
// IdleTimeout and returns how many were dropped. The carts stay in the store
// and are reopened on the client's next request.
func (r *Registry) EvictIdle(ctx context.Context) (int, error) {
	if r.opts.IdleTimeout <= 0 {
		return 0, nil
	}
	cutoff := r.opts.Clock.Now().Add(-r.opts.IdleTimeout)

	r.mu.Lock()
	var idle []*manager.Manager
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			idle = append(idle, s.m)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	var errs []error
	for _, m := range idle {
		if err := m.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(idle) > 0 {
		r.opts.Logger.Debug("idle cart sessions evicted",
			zap.Int("sessions", len(idle)),
			zap.Int("failed", len(errs)))
	}
	return len(idle), errors.Join(errs...)
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (r *Registry) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.EvictIdle(ctx); err != nil {
				r.opts.Logger.Warn("failed to flush idle cart sessions", zap.Error(err))
			}
		}
	}
}

// CloseAll flushes every open session and empties the registry.
func (r *Registry) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*session)
	r.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.m.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	r.opts.Logger.Info("cart sessions flushed",
		zap.Int("sessions", len(sessions)),
		zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}
