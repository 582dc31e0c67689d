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

	"github.com/feral-file/ff-revenue-sync/internal/domain"
)

const (
	// DatabaseDriverSQLite is the embedded database driver
	DatabaseDriverSQLite = "sqlite"
	// DatabaseDriverPostgres is the PostgreSQL database driver
	DatabaseDriverPostgres = "postgres"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite or postgres
	Path            string        `mapstructure:"path"`   // sqlite database file
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

// UpstreamConfig holds the analytics API configuration
type UpstreamConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	HTTPTimeout          time.Duration `mapstructure:"http_timeout"`
	MaxRequestsPerMinute int           `mapstructure:"max_requests_per_minute"`
}

// IngestConfig holds metric ingestion configuration
type IngestConfig struct {
	WorkerPoolSize int  `mapstructure:"worker_pool_size"`
	BackfillDays   int  `mapstructure:"backfill_days"`
	DryRun         bool `mapstructure:"dry_run"`
}

// SchedulerConfig holds configuration of the periodic ingestion trigger
type SchedulerConfig struct {
	Disabled  bool          `mapstructure:"disabled"`
	RunOnBoot bool          `mapstructure:"run_on_boot"`
	Interval  time.Duration `mapstructure:"interval"`
}

// SyncerConfig holds configuration for revenue-sync
type SyncerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Upstream   UpstreamConfig  `mapstructure:"upstream"`
	Ingest     IngestConfig    `mapstructure:"ingest"`
	Scheduler  SchedulerConfig `mapstructure:"scheduler"`
}

// LoadSyncerConfig loads configuration for revenue-sync
func LoadSyncerConfig(configFile string, envPath string) (*SyncerConfig, error) {
	v := configureViper("revenue-sync", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.driver", DatabaseDriverSQLite)
	v.SetDefault("database.path", "data/revenue-sync.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("upstream.base_url", "https://api.llama.fi")
	v.SetDefault("upstream.http_timeout", "30s")
	v.SetDefault("upstream.max_requests_per_minute", domain.DEFAULT_MAX_REQUESTS_PER_MINUTE)
	v.SetDefault("ingest.worker_pool_size", domain.DEFAULT_WORKER_POOL_SIZE)
	v.SetDefault("ingest.backfill_days", domain.DEFAULT_BACKFILL_DAYS)
	v.SetDefault("ingest.dry_run", false)
	v.SetDefault("scheduler.disabled", false)
	v.SetDefault("scheduler.run_on_boot", false)
	v.SetDefault("scheduler.interval", "6h")

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg SyncerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and normalizes bounded values
func (c *SyncerConfig) Validate() error {
	switch c.Database.Driver {
	case DatabaseDriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case DatabaseDriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required for the postgres driver")
		}
		if c.Database.DBName == "" {
			return errors.New("database.dbname is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	if c.Upstream.BaseURL == "" {
		return errors.New("upstream.base_url is required")
	}

	c.Upstream.MaxRequestsPerMinute = ClampRequestsPerMinute(c.Upstream.MaxRequestsPerMinute)
	if c.Ingest.WorkerPoolSize <= 0 {
		c.Ingest.WorkerPoolSize = domain.DEFAULT_WORKER_POOL_SIZE
	}
	if c.Ingest.BackfillDays < 0 {
		c.Ingest.BackfillDays = domain.DEFAULT_BACKFILL_DAYS
	}
	if c.Scheduler.Interval <= 0 && !c.Scheduler.Disabled {
		return errors.New("scheduler.interval must be positive")
	}

	return nil
}

// ClampRequestsPerMinute bounds the upstream request budget.
// Zero or negative values fall back to the default budget.
func ClampRequestsPerMinute(rpm int) int {
	if rpm <= 0 {
		return domain.DEFAULT_MAX_REQUESTS_PER_MINUTE
	}
	return min(max(rpm, domain.MIN_REQUESTS_PER_MINUTE), domain.MAX_REQUESTS_PER_MINUTE)
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/revenue-sync/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("REVENUE_SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.driver",
		"database.path",
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
		// Upstream
		"upstream.base_url",
		"upstream.http_timeout",
		"upstream.max_requests_per_minute",
		// Ingest
		"ingest.worker_pool_size",
		"ingest.backfill_days",
		"ingest.dry_run",
		// Scheduler
		"scheduler.disabled",
		"scheduler.run_on_boot",
		"scheduler.interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
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

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
