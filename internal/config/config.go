package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the movie database and its dependencies.
type Config struct {
	// LogLevel is the log level for the application (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// MediaRoot is the directory where uploaded movie images are stored.
	MediaRoot string `yaml:"media_root" mapstructure:"media_root"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Cache holds the configuration for the query cache.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Driver is the database driver to use (e.g., "sqlite", "postgres").
	Driver DatabaseDriver `yaml:"driver" mapstructure:"driver"`
	// Path is the path to the database file when using the sqlite driver.
	Path string `yaml:"path" mapstructure:"path"`
	// DSN is the connection string when using the postgres driver.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// CacheConfig holds the configuration for the query cache.
type CacheConfig struct {
	// Enabled indicates whether query results are cached at all.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the URL for the Redis cache if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is how long cached query results stay valid.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
	// RefreshInterval is how often the refresh daemon recomputes the top
	// movies into the cache. Zero disables background refreshing.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
}

func Load(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Configure Viper
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MOVIEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.moviedb")
		v.AddConfigPath("/etc/moviedb")
	}

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Print info about config file usage
	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with MOVIEDB_ prefix will override config file values")
	}

	// Validate required configs
	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("media_root", "./media_root")

	// Database defaults
	v.SetDefault("database.driver", DatabaseDriverSQLite)
	v.SetDefault("database.path", "./data/moviedb.db")
	v.SetDefault("database.dsn", "")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", CacheTypeMemory) // Default to in-memory
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 5*time.Second)
	v.SetDefault("cache.refresh_interval", time.Duration(0))
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c.Database == nil {
		return fmt.Errorf("missing database config")
	}

	switch c.Database.Driver {
	case DatabaseDriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required when using the sqlite driver")
		}
	case DatabaseDriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required when using the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Cache != nil {
		if c.Cache.Enabled && c.Cache.Type == "" {
			return fmt.Errorf("cache type is required when cache is enabled")
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
		if c.Cache.Enabled && c.Cache.TTL <= 0 {
			return fmt.Errorf("cache TTL must be positive when cache is enabled")
		}
		if c.Cache.RefreshInterval > 0 && !c.Cache.Enabled {
			return fmt.Errorf("cache refresh requires the cache to be enabled")
		}
		if c.Cache.RefreshInterval > 0 && c.Cache.RefreshInterval >= c.Cache.TTL {
			log.Warn("Cache refresh interval exceeds the TTL, refreshed entries may expire between runs",
				"refresh_interval", c.Cache.RefreshInterval, "ttl", c.Cache.TTL)
		}
	} else {
		c.Cache = &CacheConfig{
			Enabled: true,
			Type:    CacheTypeMemory, // Default to in-memory cache if not configured
			TTL:     5 * time.Second,
		}
	}

	return nil
}
