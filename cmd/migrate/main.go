package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

type target struct {
	project  string
	instance string
	database string
}

func (t target) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", t.project, t.instance)
}

func (t target) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", t.instancePath(), t.database)
}

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "create the Spanner instance and database and apply the cart schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Value: "test-project", EnvVars: []string{"SPANNER_PROJECT_ID"}, Usage: "GCP project ID"},
			&cli.StringFlag{Name: "instance", Value: "dev-instance", EnvVars: []string{"SPANNER_INSTANCE_ID"}, Usage: "Spanner instance ID"},
			&cli.StringFlag{Name: "database", Value: "storefront-db", EnvVars: []string{"SPANNER_DATABASE_ID"}, Usage: "Spanner database ID"},
			&cli.StringFlag{Name: "migrations", Value: "migrations", Usage: "directory containing migration SQL files"},
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"STOREFRONT_LOG_LEVEL"}},
		},
		Action: func(c *cli.Context) error {
			zl, err := logger.New(c.String("log-level"), "console")
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()

			if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
				zl.Info("using Spanner emulator", zap.String("host", host))
			}

			t := target{
				project:  c.String("project"),
				instance: c.String("instance"),
				database: c.String("database"),
			}
			if err := run(c.Context, zl, t, c.String("migrations")); err != nil {
				return err
			}
			zl.Info("migrations completed")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func run(ctx context.Context, zl *zap.Logger, t target, dir string) error {
	if err := ensureInstance(ctx, zl, t); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := ensureDatabase(ctx, zl, t); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := applyMigrations(ctx, zl, t, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func ensureInstance(ctx context.Context, zl *zap.Logger, t target) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: t.instancePath()})
	if err == nil {
		zl.Info("instance already exists", zap.String("instance", t.instance))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		zl.Warn("unexpected error checking instance", zap.Error(err))
		return nil
	}

	zl.Info("creating instance", zap.String("instance", t.instance))
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + t.project,
		InstanceId: t.instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", t.project),
			DisplayName: "Storefront Development",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		zl.Warn("instance creation did not settle cleanly", zap.Error(err))
	}
	return nil
}

func ensureDatabase(ctx context.Context, zl *zap.Logger, t target) error {
	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: t.databasePath()})
	if err == nil {
		zl.Info("database already exists", zap.String("database", t.database))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			zl.Warn("proceeding with database in emulator mode", zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	zl.Info("creating database", zap.String("database", t.database))
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          t.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", t.database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

func applyMigrations(ctx context.Context, zl *zap.Logger, t target, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		zl.Warn("no migration files found", zap.String("dir", dir))
		return nil
	}
	sort.Strings(files)

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   t.databasePath(),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			if status.Code(err) == codes.AlreadyExists || strings.Contains(err.Error(), "Duplicate name") {
				zl.Info("migration already applied", zap.String("file", name))
				continue
			}
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		zl.Info("applied migration", zap.String("file", name))
	}
	return nil
}

// splitDDLStatements drops "--" comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
