// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the server needs at startup.
type Config struct {
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Storage StorageConfig
	Cache   CacheConfig
}

// DBConfig configures the Postgres connection.
type DBConfig struct {
	Host          string `env:"DB_HOST" envDefault:"localhost"`
	Port          string `env:"DB_PORT" envDefault:"5432"`
	User          string `env:"DB_USER" envDefault:"orgair"`
	Password      string `env:"DB_PASSWORD"`
	Name          string `env:"DB_NAME" envDefault:"orgair"`
	SSLMode       string `env:"DB_SSLMODE" envDefault:"disable"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// DSN builds the Postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig configures the cache backend connection.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Addr returns the host:port pair for the Redis client.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// AuthConfig configures token issuance and login throttling.
type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// Credential endpoints are throttled per client IP to slow down
	// brute-force attempts. A limit of 0 disables throttling.
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
}

// StorageConfig configures the S3-compatible blob store.
type StorageConfig struct {
	Endpoint     string        `env:"STORAGE_ENDPOINT"`
	Region       string        `env:"STORAGE_REGION" envDefault:"us-east-1"`
	Bucket       string        `env:"STORAGE_BUCKET"`
	AccessKey    string        `env:"STORAGE_ACCESS_KEY"`
	SecretKey    string        `env:"STORAGE_SECRET_KEY"`
	UsePathStyle bool          `env:"STORAGE_USE_PATH_STYLE" envDefault:"true"`
	PresignTTL   time.Duration `env:"STORAGE_PRESIGN_TTL" envDefault:"15m"`
}

// CacheConfig holds the per-entity-class time-to-live values.
// The cache is an optimization only; these bound how stale a reader
// can observe an entry after a missed invalidation.
type CacheConfig struct {
	CompanyTTL    time.Duration `env:"CACHE_COMPANY_TTL" envDefault:"5m"`
	AssessmentTTL time.Duration `env:"CACHE_ASSESSMENT_TTL" envDefault:"2m"`
	IndustryTTL   time.Duration `env:"CACHE_INDUSTRY_TTL" envDefault:"1h"`
	WeightsTTL    time.Duration `env:"CACHE_WEIGHTS_TTL" envDefault:"24h"`
	NotFoundTTL   time.Duration `env:"CACHE_NOT_FOUND_TTL" envDefault:"30s"`
}

// Load parses the full configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
