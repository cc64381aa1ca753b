package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Scheduler    SchedulerConfig
	Alerts       AlertsConfig
	Notification NotificationConfig
	Storage      StorageConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings. Enabled false falls back to
// the in-memory cache.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SchedulerConfig holds the background sweep intervals
type SchedulerConfig struct {
	Enabled          bool
	ExpiryInterval   time.Duration // daily expiry check
	LowStockInterval time.Duration // hourly low-stock check
	DispatchInterval time.Duration // notification dispatch sweep
}

// AlertsConfig holds stock alert thresholds used when no settings row
// exists yet
type AlertsConfig struct {
	LowStockThreshold int
	ExpiryAlertDays   int
}

// NotificationConfig holds the outbound messaging provider settings
type NotificationConfig struct {
	Provider      string // meta, mock
	DispatchBatch int
	APIBaseURL    string
	AccessToken   string
	PhoneNumberID string
}

// StorageConfig holds invoice document storage settings
type StorageConfig struct {
	Provider string // s3, local
	Bucket   string
	Region   string
	Endpoint string // custom endpoint for S3-compatible stores
	LocalDir string // used by the local provider

	// AccessKey and SecretKey override the default AWS credential chain
	AccessKey string
	SecretKey string
}

// Load loads configuration from config.toml and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with PHARMA_ prefix (e.g., PHARMA_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// missing config file is fine, defaults and env vars apply
	}

	v.SetEnvPrefix("PHARMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		Scheduler: SchedulerConfig{
			Enabled:          v.GetBool("scheduler.enabled"),
			ExpiryInterval:   v.GetDuration("scheduler.expiry_interval"),
			LowStockInterval: v.GetDuration("scheduler.low_stock_interval"),
			DispatchInterval: v.GetDuration("scheduler.dispatch_interval"),
		},
		Alerts: AlertsConfig{
			LowStockThreshold: v.GetInt("alerts.low_stock_threshold"),
			ExpiryAlertDays:   v.GetInt("alerts.expiry_alert_days"),
		},
		Notification: NotificationConfig{
			Provider:      v.GetString("notification.provider"),
			DispatchBatch: v.GetInt("notification.dispatch_batch"),
			APIBaseURL:    v.GetString("notification.api_base_url"),
			AccessToken:   v.GetString("notification.access_token"),
			PhoneNumberID: v.GetString("notification.phone_number_id"),
		},
		Storage: StorageConfig{
			Provider: v.GetString("storage.provider"),
			Bucket:   v.GetString("storage.bucket"),
			Region:   v.GetString("storage.region"),
			Endpoint:  v.GetString("storage.endpoint"),
			LocalDir:  v.GetString("storage.local_dir"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pharmaledger-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "pharmaledger"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.Scheduler.ExpiryInterval == 0 {
		cfg.Scheduler.ExpiryInterval = 24 * time.Hour
	}
	if cfg.Scheduler.LowStockInterval == 0 {
		cfg.Scheduler.LowStockInterval = time.Hour
	}
	if cfg.Scheduler.DispatchInterval == 0 {
		cfg.Scheduler.DispatchInterval = 15 * time.Minute
	}
	if cfg.Alerts.LowStockThreshold == 0 {
		cfg.Alerts.LowStockThreshold = 10
	}
	if cfg.Alerts.ExpiryAlertDays == 0 {
		cfg.Alerts.ExpiryAlertDays = 15
	}
	if cfg.Notification.Provider == "" {
		cfg.Notification.Provider = "mock"
	}
	if cfg.Notification.DispatchBatch == 0 {
		cfg.Notification.DispatchBatch = 20
	}
	if cfg.Notification.APIBaseURL == "" {
		cfg.Notification.APIBaseURL = "https://graph.facebook.com/v19.0"
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "./invoices"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "ap-south-1"
	}
}

// validate checks that the configuration is usable
func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	switch c.Notification.Provider {
	case "meta", "mock":
	default:
		return fmt.Errorf("invalid notification provider %q", c.Notification.Provider)
	}
	switch c.Storage.Provider {
	case "s3", "local":
	default:
		return fmt.Errorf("invalid storage provider %q", c.Storage.Provider)
	}
	if c.Notification.Provider == "meta" && c.Notification.AccessToken == "" {
		return fmt.Errorf("notification provider meta requires an access token")
	}
	if c.Storage.Provider == "s3" && c.Storage.Bucket == "" {
		return fmt.Errorf("storage provider s3 requires a bucket")
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Addr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the app runs in production mode
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
