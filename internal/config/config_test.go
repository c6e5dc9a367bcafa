package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes the yaml content to a config file in a temp dir and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

// emptyEnvDir returns an env directory without any .env files so the host's config/ isn't picked up
func emptyEnvDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

func TestLoadWorkerOrdersConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *WorkerOrdersConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
redis:
  addr: "redis:6379"
  db: 2
worker:
  concurrency: 6
  poll_interval: "250ms"
  lock_duration: "1m"
  token_batch_size: 200
cleanup:
  enabled: false
`,
			validate: func(t *testing.T, cfg *WorkerOrdersConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "redis:6379", cfg.Redis.Addr)
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.Equal(t, 6, cfg.Worker.Concurrency)
				assert.Equal(t, 250*time.Millisecond, cfg.Worker.PollInterval)
				assert.Equal(t, time.Minute, cfg.Worker.LockDuration)
				assert.Equal(t, 200, cfg.Worker.TokenBatchSize)
				assert.False(t, cfg.Cleanup.Enabled)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *WorkerOrdersConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 3, cfg.Worker.Concurrency)
				assert.Equal(t, time.Second, cfg.Worker.PollInterval)
				assert.Equal(t, 30*time.Second, cfg.Worker.LockDuration)
				assert.Equal(t, 1000, cfg.Worker.TokenBatchSize)
				assert.True(t, cfg.Cleanup.Enabled)
				assert.Equal(t, time.Minute, cfg.Cleanup.Interval)
				assert.Equal(t, 55*time.Second, cfg.Cleanup.LockTTL)
				assert.Equal(t, 10*time.Minute, cfg.Cleanup.Retention)
				assert.Equal(t, 10000, cfg.Cleanup.Keep)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
`,
			expectError: "database.host is required",
		},
		{
			name: "zero concurrency",
			configFile: `
database:
  host: localhost
  dbname: testdb
worker:
  concurrency: 0
`,
			expectError: "worker.concurrency must be at least 1",
		},
		{
			name: "zero lock duration",
			configFile: `
database:
  host: localhost
  dbname: testdb
worker:
  lock_duration: "0s"
`,
			expectError: "worker.lock_duration must be positive",
		},
		{
			name: "lock ttl not shorter than interval",
			configFile: `
database:
  host: localhost
  dbname: testdb
cleanup:
  interval: "1m"
  lock_ttl: "1m"
`,
			expectError: "cleanup.lock_ttl must be positive and shorter than cleanup.interval",
		},
		{
			name: "invalid lock ttl ignored when cleanup disabled",
			configFile: `
database:
  host: localhost
  dbname: testdb
cleanup:
  enabled: false
  interval: "1m"
  lock_ttl: "2m"
`,
			validate: func(t *testing.T, cfg *WorkerOrdersConfig) {
				assert.False(t, cfg.Cleanup.Enabled)
			},
		},
		{
			name: "invalid yaml",
			configFile: `
database:
  host: localhost
  port: invalid
`,
			expectError: "failed to unmarshal config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tt.configFile)

			cfg, err := LoadWorkerOrdersConfig(configFile, emptyEnvDir(t))

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *SweeperConfig)
	}{
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 5, cfg.Database.MaxOpenConns)
				assert.Equal(t, 2, cfg.Database.MaxIdleConns)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, time.Minute, cfg.Cleanup.Interval)
				assert.Equal(t, 55*time.Second, cfg.Cleanup.LockTTL)
				assert.Equal(t, 10*time.Minute, cfg.Cleanup.Retention)
				assert.Equal(t, 10000, cfg.Cleanup.Keep)
			},
		},
		{
			name: "custom cleanup",
			configFile: `
database:
  host: localhost
  dbname: testdb
redis:
  addr: "cache:6380"
  password: secret
cleanup:
  interval: "5m"
  lock_ttl: "4m"
  retention: "1h"
  keep: 500
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, "cache:6380", cfg.Redis.Addr)
				assert.Equal(t, "secret", cfg.Redis.Password)
				assert.Equal(t, 5*time.Minute, cfg.Cleanup.Interval)
				assert.Equal(t, 4*time.Minute, cfg.Cleanup.LockTTL)
				assert.Equal(t, time.Hour, cfg.Cleanup.Retention)
				assert.Equal(t, 500, cfg.Cleanup.Keep)
			},
		},
		{
			name: "lock ttl longer than interval",
			configFile: `
database:
  host: localhost
  dbname: testdb
cleanup:
  interval: "30s"
  lock_ttl: "55s"
`,
			expectError: "cleanup.lock_ttl must be positive and shorter than cleanup.interval",
		},
		{
			name: "missing dbname",
			configFile: `
database:
  host: localhost
`,
			expectError: "database.dbname is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tt.configFile)

			cfg, err := LoadSweeperConfig(configFile, emptyEnvDir(t))

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadEventBridgeConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *EventBridgeConfig)
	}{
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
nats:
  url: "nats://localhost:4222"
`,
			validate: func(t *testing.T, cfg *EventBridgeConfig) {
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "ORDER_UPDATES", cfg.NATS.StreamName)
				assert.Equal(t, "order-updates-bridge", cfg.NATS.ConsumerName)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, 30*time.Second, cfg.NATS.AckWait)
				assert.Equal(t, 5, cfg.NATS.MaxDeliver)
				assert.Equal(t, 5, cfg.Queue.Retry.Attempts)
				assert.Equal(t, "exponential", cfg.Queue.Retry.BackoffType)
				assert.Equal(t, 10*time.Second, cfg.Queue.Retry.BackoffDelay)
			},
		},
		{
			name: "custom retry",
			configFile: `
database:
  host: localhost
  dbname: testdb
nats:
  url: "nats://localhost:4222"
queue:
  retry:
    attempts: 8
    backoff_type: fixed
    backoff_delay: "3s"
`,
			validate: func(t *testing.T, cfg *EventBridgeConfig) {
				assert.Equal(t, 8, cfg.Queue.Retry.Attempts)
				assert.Equal(t, "fixed", cfg.Queue.Retry.BackoffType)
				assert.Equal(t, 3*time.Second, cfg.Queue.Retry.BackoffDelay)
			},
		},
		{
			name: "unknown backoff type",
			configFile: `
database:
  host: localhost
  dbname: testdb
nats:
  url: "nats://localhost:4222"
queue:
  retry:
    backoff_type: linear
`,
			expectError: "queue.retry.backoff_type must be exponential or fixed",
		},
		{
			name: "zero attempts",
			configFile: `
database:
  host: localhost
  dbname: testdb
nats:
  url: "nats://localhost:4222"
queue:
  retry:
    attempts: 0
`,
			expectError: "queue.retry.attempts must be at least 1",
		},
		{
			name: "custom nats",
			configFile: `
database:
  host: localhost
  dbname: testdb
nats:
  url: "nats://nats:4222"
  stream_name: "TEST_STREAM"
  consumer_name: "test-consumer"
  connection_name: "test-bridge"
  max_deliver: 10
`,
			validate: func(t *testing.T, cfg *EventBridgeConfig) {
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, "test-consumer", cfg.NATS.ConsumerName)
				assert.Equal(t, "test-bridge", cfg.NATS.ConnectionName)
				assert.Equal(t, 10, cfg.NATS.MaxDeliver)
			},
		},
		{
			name: "missing nats url",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			expectError: "nats.url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tt.configFile)

			cfg, err := LoadEventBridgeConfig(configFile, emptyEnvDir(t))

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadPublisherConfig(t *testing.T) {
	configFile := writeConfig(t, `
nats:
  url: "nats://localhost:4222"
`)

	cfg, err := LoadPublisherConfig(configFile, emptyEnvDir(t))
	require.NoError(t, err)
	assert.Equal(t, "ORDER_UPDATES", cfg.NATS.StreamName)

	configFile = writeConfig(t, `debug: true`)
	cfg, err = LoadPublisherConfig(configFile, emptyEnvDir(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_MissingConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

	cfg, err := LoadSweeperConfig(configFile, emptyEnvDir(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
	assert.Nil(t, cfg)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "db.internal",
				Port:     6432,
				User:     "orders",
				Password: "p@ssw0rd!",
				DBName:   "orderbook",
				SSLMode:  "disable",
			},
			expected: "host=db.internal port=6432 user=orders password=p@ssw0rd! dbname=orderbook sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// Viper uses the FF_ORDERBOOK_ prefix
	envContent := `FF_ORDERBOOK_DEBUG=true
FF_ORDERBOOK_DATABASE_HOST=env-host
FF_ORDERBOOK_DATABASE_PORT=6543
FF_ORDERBOOK_DATABASE_DBNAME=env-db
FF_ORDERBOOK_WORKER_CONCURRENCY=7
FF_ORDERBOOK_CLEANUP_KEEP=42
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// Per-service local file overrides the shared one
	serviceEnv := `FF_ORDERBOOK_WORKER_CONCURRENCY=9
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.worker-orders.local"), []byte(serviceEnv), 0600))

	// godotenv.Overload sets real process env vars, unset them so other tests aren't affected
	t.Cleanup(func() {
		for _, line := range strings.Split(envContent+serviceEnv, "\n") {
			if key, _, ok := strings.Cut(line, "="); ok {
				_ = os.Unsetenv(key)
			}
		}
	})

	configFile := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
worker:
  concurrency: 2
`)

	cfg, err := LoadWorkerOrdersConfig(configFile, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, 9, cfg.Worker.Concurrency)
	assert.Equal(t, 42, cfg.Cleanup.Keep)
}
