package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           string        `env:"PORT,             default=3500"`
	Env            string        `env:"ENV,              default=development"`
	LogLevel       string        `env:"LOG_LEVEL,        default=info"`
	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=15m"`
	BcryptCost     int           `env:"BCRYPT_COST,      default=10"`
	Store          string        `env:"STORE,            default=mongo"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=technotes"`
}

type RedisConfig struct {
	Addr             string        `env:"REDIS_ADDR,         default=localhost:6379"`
	DB               int           `env:"REDIS_DB,           default=0"`
	UsernameCacheTTL time.Duration `env:"USERNAME_CACHE_TTL, default=5m"`
}

// IsDevelopment reports whether the service runs with developer defaults
// (console logging).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the process environment.
// It panics on malformed values, there is nothing sensible to start with.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}

	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process resolves the configuration from l and checks the values that have
// a closed set of options.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}

	switch cfg.Store {
	case StoreMongo, StoreMemory:
	default:
		return nil, fmt.Errorf("config: STORE must be %q or %q, got %q", StoreMongo, StoreMemory, cfg.Store)
	}
	return &cfg, nil
}
