package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
	"github.com/light-bringer/storefront-service/internal/services"
	"github.com/light-bringer/storefront-service/internal/transport/grpc/health"
	httphandler "github.com/light-bringer/storefront-service/internal/transport/http"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from .env and the environment
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("starting storefront service",
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.String("store_backend", cfg.StoreBackend))

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}

	// 3. gRPC health and reflection
	grpcServer := health.NewServer(zl.Named("grpc"))
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		_ = serviceOpts.Close(context.Background())
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			zl.Error("gRPC server error", zap.Error(err))
		}
	}()

	// 4. HTTP API
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httphandler.NewRouter(serviceOpts, cfg.RequestTimeout, zl.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zl.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("HTTP server error", zap.Error(err))
			stop()
		}
	}()

	// 5. Graceful shutdown
	<-ctx.Done()
	zl.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP server shutdown error", zap.Error(err))
	}
	grpcServer.Shutdown()

	// Carts are flushed last so no request can mutate them afterwards.
	if err := serviceOpts.Close(shutdownCtx); err != nil {
		zl.Error("failed to flush carts on shutdown", zap.Error(err))
		return err
	}
	return nil
}
