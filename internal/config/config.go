package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host      string `mapstructure:"host"`       // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort  int    `mapstructure:"http_port"`  // HTTP server port
	BodyLimit int    `mapstructure:"body_limit"` // Max request body size in bytes (CSV uploads)
}

// StoreConfig represents the sales store configuration
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // Store driver: sqlite (default), memory
	Path   string `mapstructure:"path"`   // SQLite database file path
}

// CacheConfig represents the Redis series cache configuration
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`  // Enable read-through series caching
	Addr     string        `mapstructure:"addr"`     // Redis address (host:port)
	Password string        `mapstructure:"password"` // Optional authentication
	DB       int           `mapstructure:"db"`       // Redis database number
	TTL      time.Duration `mapstructure:"ttl"`      // Cached series lifetime
}

// QueueConfig represents message queue configuration for the ingest pipeline
type QueueConfig struct {
	Type     string `mapstructure:"type"`     // Queue type: nats (default), redis, kafka, memory
	URL      string `mapstructure:"url"`      // Queue server URL (e.g., nats://localhost:4222, redis://localhost:6379)
	Username string `mapstructure:"username"` // Optional authentication
	Password string `mapstructure:"password"` // Optional authentication

	// Redis-specific options
	RedisDB       int    `mapstructure:"redis_db"`       // Redis database number (default: 0)
	RedisStream   string `mapstructure:"redis_stream"`   // Redis stream prefix (default: "salesforecast")
	RedisGroup    string `mapstructure:"redis_group"`    // Redis consumer group (default: "salesforecast-group")
	RedisConsumer string `mapstructure:"redis_consumer"` // Redis consumer name (default: hostname)

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"`  // Kafka broker addresses
	KafkaGroupID string   `mapstructure:"kafka_group_id"` // Kafka consumer group ID
}

// ForecastConfig represents the engine defaults applied when a request leaves
// a tuning parameter unset
type ForecastConfig struct {
	Window     int     `mapstructure:"window"`      // Smoothing window size
	Trials     int     `mapstructure:"trials"`      // Monte Carlo trial count
	Volatility float64 `mapstructure:"volatility"`  // Gaussian noise scale
	Confidence float64 `mapstructure:"confidence"`  // Interval confidence level
	MaxHorizon int     `mapstructure:"max_horizon"` // Upper bound on requested horizons
	MaxTrials  int     `mapstructure:"max_trials"`  // Upper bound on requested trial counts
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := c.Queue.Validate(); err != nil {
		return fmt.Errorf("queue config: %w", err)
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.BodyLimit < 1 {
		return fmt.Errorf("body_limit must be positive")
	}

	return nil
}

// Validate validates store configuration
func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case "sqlite":
		if c.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	case "memory":
	default:
		return fmt.Errorf("store.driver must be 'sqlite' or 'memory'")
	}

	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Addr == "" {
		return fmt.Errorf("cache.addr is required when caching is enabled")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	return nil
}

// Validate validates queue configuration
func (c *QueueConfig) Validate() error {
	switch c.Type {
	case "", "nats", "redis", "kafka", "memory":
		return nil
	}
	return fmt.Errorf("queue.type must be one of: nats, redis, kafka, memory")
}

// Validate validates forecast defaults
func (c *ForecastConfig) Validate() error {
	if c.Window < 1 {
		return fmt.Errorf("forecast.window must be at least 1")
	}

	if c.Trials < 1 {
		return fmt.Errorf("forecast.trials must be at least 1")
	}

	if c.Volatility < 0 {
		return fmt.Errorf("forecast.volatility must not be negative")
	}

	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("forecast.confidence must be inside (0,1)")
	}

	if c.MaxHorizon < 1 {
		return fmt.Errorf("forecast.max_horizon must be at least 1")
	}

	if c.MaxTrials < c.Trials {
		return fmt.Errorf("forecast.max_trials must be at least forecast.trials")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
