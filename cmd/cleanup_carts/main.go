package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

// staleCarts is the part of the Spanner store the cleanup job needs.
type staleCarts interface {
	CountStale(ctx context.Context, cutoff time.Time) (int64, error)
	ListStale(ctx context.Context, cutoff time.Time, limit int64) ([]string, error)
	DeleteMany(ctx context.Context, keys []string) error
}

type options struct {
	retention time.Duration
	batchSize int64
	dryRun    bool
}

func main() {
	app := &cli.App{
		Name:  "cleanup_carts",
		Usage: "delete cart snapshots that have not been touched within the retention window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database",
				Usage:    "Spanner database (projects/PROJECT/instances/INSTANCE/databases/DATABASE)",
				EnvVars:  []string{"STOREFRONT_SPANNER_DATABASE"},
				Required: true,
			},
			&cli.DurationFlag{Name: "retention", Value: 30 * 24 * time.Hour, Usage: "age after which an untouched cart is deleted"},
			&cli.Int64Flag{Name: "batch-size", Value: 500, Usage: "carts deleted per commit"},
			&cli.BoolFlag{Name: "dry-run", Usage: "show what would be deleted without deleting"},
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"STOREFRONT_LOG_LEVEL"}},
		},
		Action: func(c *cli.Context) error {
			zl, err := logger.New(c.String("log-level"), "console")
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()

			client, err := spanner.NewClient(c.Context, c.String("database"))
			if err != nil {
				return fmt.Errorf("failed to create Spanner client: %w", err)
			}
			defer client.Close()

			store := repo.NewSpannerStore(client, committer.NewCommitter(client))
			deleted, err := cleanup(c.Context, zl, store, clock.NewSystem(), options{
				retention: c.Duration("retention"),
				batchSize: c.Int64("batch-size"),
				dryRun:    c.Bool("dry-run"),
			})
			if err != nil {
				return err
			}
			zl.Info("cleanup completed", zap.Int64("deleted", deleted))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
}

// cleanup deletes carts older than the retention window in batches and
// returns how many were deleted. A dry run only counts them.
func cleanup(ctx context.Context, zl *zap.Logger, store staleCarts, clk clock.Clock, opts options) (int64, error) {
	if opts.batchSize <= 0 {
		return 0, fmt.Errorf("batch size must be positive, got %d", opts.batchSize)
	}
	cutoff := clk.Now().Add(-opts.retention)

	count, err := store.CountStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	zl.Info("stale carts found",
		zap.Int64("count", count),
		zap.Time("cutoff", cutoff),
		zap.Bool("dry_run", opts.dryRun))

	if opts.dryRun || count == 0 {
		return 0, nil
	}

	var deleted int64
	for {
		keys, err := store.ListStale(ctx, cutoff, opts.batchSize)
		if err != nil {
			return deleted, err
		}
		if len(keys) == 0 {
			return deleted, nil
		}
		if err := store.DeleteMany(ctx, keys); err != nil {
			return deleted, err
		}
		deleted += int64(len(keys))
		zl.Debug("deleted batch", zap.Int("size", len(keys)), zap.Int64("total", deleted))

		if int64(len(keys)) < opts.batchSize {
			return deleted, nil
		}
	}
}
