package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/cart/sessions"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/catalog/data"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_item"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/search_items"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config  *config.Config
	Logger  *zap.Logger
	Clock   clock.Clock
	Catalog *catalog.Catalog
	Store   contracts.SnapshotStore

	Sessions    *sessions.Registry
	SearchItems *search_items.Query
	GetItem     *get_item.Query
	PlaceOrder  *place_order.Interactor

	stopEviction context.CancelFunc
	closers      []func(context.Context) error
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	s := &ServiceOptions{
		Config: cfg,
		Logger: logger,
		Clock:  clock.NewSystem(),
	}

	// 1. Load the catalog
	var err error
	if cfg.CatalogPath != "" {
		s.Catalog, err = data.LoadFile(cfg.CatalogPath)
	} else {
		s.Catalog, err = data.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded", zap.Int("items", s.Catalog.Len()))

	// 2. Open the snapshot store
	if err := s.openStore(ctx); err != nil {
		return nil, err
	}
	logger.Info("cart store ready", zap.String("backend", cfg.StoreBackend))

	// 3. Cart sessions and use cases
	shipping := cart.ShippingPolicy{
		FreeThreshold: cfg.FreeShippingThreshold,
		FlatFee:       cfg.ShippingFee,
	}
	s.Sessions = sessions.NewRegistry(sessions.Options{
		Catalog:     s.Catalog,
		Store:       s.Store,
		Clock:       s.Clock,
		Logger:      logger.Named("cart"),
		Shipping:    shipping,
		IdleTimeout: cfg.SessionIdleTimeout,
	})
	if cfg.SessionIdleTimeout > 0 && cfg.SessionSweepInterval > 0 {
		evictCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.stopEviction = cancel
		go s.Sessions.RunEviction(evictCtx, cfg.SessionSweepInterval)
	}
	s.PlaceOrder = place_order.NewInteractor(s.Clock, logger.Named("checkout"))

	// 4. Catalog queries
	s.SearchItems = search_items.NewQuery(s.Catalog)
	s.GetItem = get_item.NewQuery(s.Catalog)

	return s, nil
}

func (s *ServiceOptions) openStore(ctx context.Context) error {
	cfg := s.Config

	switch cfg.StoreBackend {
	case config.BackendMemory:
		s.Store = repo.NewMemoryStore()

	case config.BackendFile:
		store, err := repo.NewFileStore(cfg.StoreDir)
		if err != nil {
			return err
		}
		s.Store = store

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		s.Store = repo.NewRedisStore(client, cfg.CartTTL)
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })

	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.Store = repo.NewSpannerStore(client, committer.NewCommitter(client))
		s.closers = append(s.closers, func(context.Context) error {
			client.Close()
			return nil
		})

	case config.BackendMongo:
		db, err := repo.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		store := repo.NewMongoStore(db, s.Clock)
		if err := store.CreateIndexes(ctx, cfg.CartTTL); err != nil {
			_ = db.Client().Disconnect(ctx)
			return err
		}
		s.Store = store
		s.closers = append(s.closers, func(ctx context.Context) error { return db.Client().Disconnect(ctx) })

	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.StoreBackend)
	}

	return nil
}

// Close flushes open carts, then releases store connections.
func (s *ServiceOptions) Close(ctx context.Context) error {
	if s.stopEviction != nil {
		s.stopEviction()
	}

	var errs []error
	if s.Sessions != nil {
		errs = append(errs, s.Sessions.CloseAll(ctx))
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i](ctx))
	}
	return errors.Join(errs...)
}
