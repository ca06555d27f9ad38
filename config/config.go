package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported storage backends
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrUnknownDriver  = errors.New("unknown postgres driver")
)

// MongoConfig holds the MongoDB client settings
type MongoConfig struct {
	URL         string `env:"MONGO_URL"`
	Username    string `env:"MONGO_USERNAME"`
	Password    string `env:"MONGO_PASSWORD"`
	AuthSource  string `env:"MONGO_AUTH_SOURCE"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE"`
	MinPoolSize uint64 `env:"MONGO_MIN_POOL_SIZE"`
}

// DatabaseConfig represents a single PostgreSQL connection configuration
type DatabaseConfig struct {
	Driver   string `env:"PG_DRIVER"`
	Host     string `env:"PG_HOST"`
	Port     int    `env:"PG_PORT"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	DBName   string `env:"PG_DBNAME"`
}

// LogConfig controls the process logger
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// Config holds the complete application configuration
type Config struct {
	Backend  string `env:"SEED_BACKEND"`
	Mongo    MongoConfig
	Postgres DatabaseConfig
	Log      LogConfig
}

// ConnectionString returns the MongoDB URI with credentials and authSource merged in.
// Values already present in the URL win.
func (mc *MongoConfig) ConnectionString() string {
	u, err := url.Parse(mc.URL)
	if err != nil {
		return mc.URL
	}

	if mc.Username == "" || u.User != nil {
		return u.String()
	}

	u.User = url.UserPassword(mc.Username, mc.Password)
	q := u.Query()
	if mc.AuthSource != "" && q.Get("authSource") == "" {
		q.Set("authSource", mc.AuthSource)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// ConnectionString returns a PostgreSQL connection string
func (dc *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dc.Host, dc.Port, dc.User, dc.Password, dc.DBName,
	)
}

// DefaultConfig returns the configuration for a local MongoDB
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendMongo,
		Mongo: MongoConfig{
			URL:         "mongodb://localhost:27017",
			AuthSource:  "admin",
			MaxPoolSize: 10,
			MinPoolSize: 1,
		},
		Postgres: DatabaseConfig{
			Driver:   "pgx",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "postgres",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load starts from DefaultConfig and applies environment overrides.
// Env files that exist are loaded first; variables already set in the
// environment are not overwritten by them.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that would otherwise only fail at connect time
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMongo:
		if c.Mongo.URL == "" {
			return errors.New("MONGO_URL must not be empty")
		}
	case BackendPostgres:
		if c.Postgres.Driver != "pgx" && c.Postgres.Driver != "postgres" {
			return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Postgres.Driver)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	return nil
}
