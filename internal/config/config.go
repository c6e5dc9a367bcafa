package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	Environment string `mapstructure:"environment"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// RetryConfig holds the retry policy stamped on new jobs
type RetryConfig struct {
	Attempts     int           `mapstructure:"attempts"`
	BackoffType  string        `mapstructure:"backoff_type"` // exponential or fixed
	BackoffDelay time.Duration `mapstructure:"backoff_delay"`
}

// QueueConfig holds order updates queue configuration
type QueueConfig struct {
	Retry RetryConfig `mapstructure:"retry"`
}

// WorkerConfig holds order updates worker configuration
type WorkerConfig struct {
	Concurrency    int           `mapstructure:"concurrency"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	LockDuration   time.Duration `mapstructure:"lock_duration"`
	TokenBatchSize int           `mapstructure:"token_batch_size"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

// CleanupConfig holds queue cleanup sweeper configuration
type CleanupConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	LockTTL   time.Duration `mapstructure:"lock_ttl"`
	Retention time.Duration `mapstructure:"retention"`
	Keep      int           `mapstructure:"keep"`
}

// WorkerOrdersConfig holds configuration for worker-orders
type WorkerOrdersConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	Cleanup    CleanupConfig  `mapstructure:"cleanup"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Cleanup    CleanupConfig  `mapstructure:"cleanup"`
}

// EventBridgeConfig holds configuration for event-bridge
type EventBridgeConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Queue      QueueConfig    `mapstructure:"queue"`
}

// PublisherConfig holds configuration for the order updates publisher tool
type PublisherConfig struct {
	BaseConfig `mapstructure:",squash"`
	NATS       NATSConfig `mapstructure:"nats"`
}

// LoadWorkerOrdersConfig loads configuration for worker-orders
func LoadWorkerOrdersConfig(configFile string, envPath string) (*WorkerOrdersConfig, error) {
	v := configureViper("worker-orders", configFile, envPath)

	setDatabaseDefaults(v)
	setCleanupDefaults(v)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("worker.concurrency", 3)
	v.SetDefault("worker.poll_interval", "1s")
	v.SetDefault("worker.lock_duration", "30s")
	v.SetDefault("worker.token_batch_size", 1000)
	v.SetDefault("worker.shutdown_grace", "30s")
	v.SetDefault("cleanup.enabled", true)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg WorkerOrdersConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if cfg.Worker.Concurrency < 1 {
		return nil, fmt.Errorf("worker.concurrency must be at least 1, got %d", cfg.Worker.Concurrency)
	}
	if cfg.Worker.LockDuration <= 0 {
		return nil, fmt.Errorf("worker.lock_duration must be positive, got %s", cfg.Worker.LockDuration)
	}
	if cfg.Cleanup.Enabled {
		if err := cfg.Cleanup.validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	setDatabaseDefaults(v)
	setCleanupDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("redis.addr", "localhost:6379")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cleanup.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEventBridgeConfig loads configuration for event-bridge
func LoadEventBridgeConfig(configFile string, envPath string) (*EventBridgeConfig, error) {
	v := configureViper("event-bridge", configFile, envPath)

	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setQueueDefaults(v)
	v.SetDefault("nats.consumer_name", "order-updates-bridge")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 5)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg EventBridgeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Queue.validate(); err != nil {
		return nil, err
	}
	if cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &cfg, nil
}

// LoadPublisherConfig loads configuration for the order updates publisher tool
func LoadPublisherConfig(configFile string, envPath string) (*PublisherConfig, error) {
	v := configureViper("publish-order-updates", configFile, envPath)

	setNATSDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg PublisherConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "ORDER_UPDATES")
}

func setQueueDefaults(v *viper.Viper) {
	v.SetDefault("queue.retry.attempts", 5)
	v.SetDefault("queue.retry.backoff_type", "exponential")
	v.SetDefault("queue.retry.backoff_delay", "10s")
}

func setCleanupDefaults(v *viper.Viper) {
	v.SetDefault("cleanup.interval", "1m")
	v.SetDefault("cleanup.lock_ttl", "55s")
	v.SetDefault("cleanup.retention", "10m")
	v.SetDefault("cleanup.keep", 10000)
}

// readInConfig reads the config file, falling back to defaults and environment variables
// when no config file is found in the search paths
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func (c DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func (c QueueConfig) validate() error {
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("queue.retry.attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Retry.BackoffType != "exponential" && c.Retry.BackoffType != "fixed" {
		return fmt.Errorf("queue.retry.backoff_type must be exponential or fixed, got %q", c.Retry.BackoffType)
	}
	if c.Retry.BackoffDelay < 0 {
		return fmt.Errorf("queue.retry.backoff_delay must not be negative, got %s", c.Retry.BackoffDelay)
	}
	return nil
}

// validate checks the lease can't outlive a cleanup cycle, which would make every other cycle skip
func (c CleanupConfig) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("cleanup.interval must be positive, got %s", c.Interval)
	}
	if c.LockTTL <= 0 || c.LockTTL >= c.Interval {
		return fmt.Errorf("cleanup.lock_ttl must be positive and shorter than cleanup.interval (%s), got %s", c.Interval, c.LockTTL)
	}
	if c.Keep < 0 {
		return fmt.Errorf("cleanup.keep must not be negative, got %d", c.Keep)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search order: current directory, service directory (e.g. cmd/sweeper/), config directory
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_ORDERBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"environment",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Queue
		"queue.retry.attempts",
		"queue.retry.backoff_type",
		"queue.retry.backoff_delay",
		// Worker
		"worker.concurrency",
		"worker.poll_interval",
		"worker.lock_duration",
		"worker.token_batch_size",
		"worker.shutdown_grace",
		// Cleanup
		"cleanup.enabled",
		"cleanup.interval",
		"cleanup.lock_ttl",
		"cleanup.retention",
		"cleanup.keep",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then optional per-service local
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // Later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
