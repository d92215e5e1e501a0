package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Token  TokenConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Postal PostalConfig
}

type TokenConfig struct {
	Secret            string        `env:"JWT_SECRET,               required"`
	TTL               time.Duration `env:"TOKEN_TTL,                default=24h"`
	Issuer            string        `env:"TOKEN_ISSUER,             default=cepapp"`
	RevocationEnabled bool          `env:"TOKEN_REVOCATION_ENABLED, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cepapp"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type PostalConfig struct {
	BaseURL string        `env:"POSTAL_BASE_URL, default=https://viacep.com.br/ws"`
	Timeout time.Duration `env:"POSTAL_TIMEOUT,  default=5s"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Token.TTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.Token.TTL)
	}
	return &cfg, nil
}
