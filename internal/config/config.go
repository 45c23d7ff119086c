package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "STATUS_"

// Store backends.
const (
	BackendMemory    = "memory"
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendCassandra = "cassandra"
)

// Config holds all configuration for the application
type Config struct {
	Host           string        `env:"HOST" envDefault:"127.0.0.1"`
	Port           string        `env:"PORT" envDefault:"8080"`
	ProfileID      string        `env:"PROFILE_ID" envDefault:"default"`
	StoreBackend   string        `env:"STORE" envDefault:"sqlite"`
	CheckSchedule  string        `env:"CHECK_SCHEDULE" envDefault:"@every 60s"`
	TimeZone       string        `env:"TIMEZONE" envDefault:"Local"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"INFO"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	WebhookURL     string        `env:"WEBHOOK_URL"`
	WebhookTimeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`

	SQLite    SQLiteConfig    `envPrefix:"SQLITE_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	Cassandra CassandraConfig `envPrefix:"CASSANDRA_"`
}

// SQLiteConfig holds the local database location
type SQLiteConfig struct {
	Path string `env:"PATH" envDefault:"status.db"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"0s"`
}

// CassandraConfig holds Cassandra-specific configuration
type CassandraConfig struct {
	Hosts       []string      `env:"HOSTS" envSeparator:"," envDefault:"localhost:9042"`
	Keyspace    string        `env:"KEYSPACE" envDefault:"status_system"`
	Username    string        `env:"USERNAME"`
	Password    string        `env:"PASSWORD"`
	Consistency string        `env:"CONSISTENCY" envDefault:"QUORUM"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse loads configuration from environment variables only
func Parse() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendCassandra:
	default:
		return fmt.Errorf("invalid %sSTORE value %q", EnvPrefix, c.StoreBackend)
	}
	if strings.TrimSpace(c.ProfileID) == "" {
		return fmt.Errorf("%sPROFILE_ID is required", EnvPrefix)
	}
	if c.StoreBackend == BackendCassandra && len(c.Cassandra.Hosts) == 0 {
		return fmt.Errorf("%sCASSANDRA_HOSTS is required when %sSTORE=cassandra", EnvPrefix, EnvPrefix)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone used for day boundaries
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid %sTIMEZONE value: %w", EnvPrefix, err)
	}
	return loc, nil
}

// Address returns the full address (host:port)
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
