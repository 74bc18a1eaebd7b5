// Package config reads service configuration from STOREFRONT_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. STOREFRONT_HTTP_PORT.
const Prefix = "STOREFRONT"

// Store backends.
const (
	BackendMemory  = "memory"
	BackendFile    = "file"
	BackendRedis   = "redis"
	BackendSpanner = "spanner"
	BackendMongo   = "mongo"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Config holds application configuration.
type Config struct {
	HTTPPort  string `envconfig:"HTTP_PORT" default:"8080"`
	GRPCPort  string `envconfig:"GRPC_PORT" default:"9090"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// CatalogPath replaces the built-in catalog when set.
	CatalogPath string `envconfig:"CATALOG_PATH"`

	StoreBackend string        `envconfig:"STORE_BACKEND" default:"file"`
	StoreDir     string        `envconfig:"STORE_DIR" default:"./data/carts"`
	CartTTL      time.Duration `envconfig:"CART_TTL" default:"720h"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SpannerDatabase string `envconfig:"SPANNER_DATABASE" default:"projects/test-project/instances/dev-instance/databases/storefront-db"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"storefront"`

	FreeShippingThreshold int64 `envconfig:"FREE_SHIPPING_THRESHOLD" default:"500"`
	ShippingFee           int64 `envconfig:"SHIPPING_FEE" default:"99"`
	PageSize              int   `envconfig:"PAGE_SIZE" default:"8"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`

	// SessionIdleTimeout drops open carts from memory after this long
	// without a request; they are reloaded from the store on next use.
	SessionIdleTimeout   time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
}

// Load reads .env files that exist, then the environment. Variables already
// set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendFile, BackendRedis, BackendSpanner, BackendMongo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StoreBackend)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.SessionIdleTimeout > 0 && c.SessionSweepInterval <= 0 {
		return fmt.Errorf("session sweep interval must be positive, got %s", c.SessionSweepInterval)
	}
	if c.FreeShippingThreshold < 0 || c.ShippingFee < 0 {
		return errors.New("shipping amounts cannot be negative")
	}
	return nil
}
