package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Shopify   ShopifyConfig
	Swap      SwapConfig
	Sync      SyncConfig
	Scheduler SchedulerConfig
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

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TrustedProxies []string
}

// ShopifyConfig holds Shopify Admin API credentials and retry settings
type ShopifyConfig struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	MaxRetries  int
	Timeout     time.Duration
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// SwapConfig holds Swap API credentials and retry settings
type SwapConfig struct {
	Store      string
	APIKey     string
	BaseURL    string
	Version    string
	MaxRetries int
	Timeout    time.Duration
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// SyncConfig holds sync orchestration settings
type SyncConfig struct {
	Enabled        bool
	PageSize       int
	InterPageDelay time.Duration
	Lookback       time.Duration
}

// SchedulerConfig holds background sync scheduler configuration
type SchedulerConfig struct {
	Enabled  bool
	Schedule string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with DEBUTE_ prefix (e.g., DEBUTE_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("DEBUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
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
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Shopify: ShopifyConfig{
			StoreDomain: v.GetString("shopify.store_domain"),
			AccessToken: v.GetString("shopify.access_token"),
			APIVersion:  v.GetString("shopify.api_version"),
			MaxRetries:  v.GetInt("shopify.max_retries"),
			Timeout:     v.GetDuration("shopify.timeout"),
			BaseDelay:   v.GetDuration("shopify.base_delay"),
			MaxDelay:    v.GetDuration("shopify.max_delay"),
		},
		Swap: SwapConfig{
			Store:      v.GetString("swap.store"),
			APIKey:     v.GetString("swap.api_key"),
			BaseURL:    v.GetString("swap.base_url"),
			Version:    v.GetString("swap.version"),
			MaxRetries: v.GetInt("swap.max_retries"),
			Timeout:    v.GetDuration("swap.timeout"),
			BaseDelay:  v.GetDuration("swap.base_delay"),
			MaxDelay:   v.GetDuration("swap.max_delay"),
		},
		Sync: SyncConfig{
			Enabled:        v.GetBool("sync.enabled"),
			PageSize:       v.GetInt("sync.page_size"),
			InterPageDelay: v.GetDuration("sync.inter_page_delay"),
			Lookback:       v.GetDuration("sync.lookback"),
		},
		Scheduler: SchedulerConfig{
			Enabled:  v.GetBool("scheduler.enabled"),
			Schedule: v.GetString("scheduler.schedule"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "debute-backend"
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
		cfg.Database.DBName = "debute"
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
		// Sync runs are synchronous requests and can outlive a default
		// write timeout on large windows.
		cfg.HTTP.WriteTimeout = 10 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = "2024-01"
	}
	if cfg.Shopify.MaxRetries == 0 {
		cfg.Shopify.MaxRetries = 3
	}
	if cfg.Shopify.Timeout == 0 {
		cfg.Shopify.Timeout = 30 * time.Second
	}
	if cfg.Shopify.BaseDelay == 0 {
		cfg.Shopify.BaseDelay = 500 * time.Millisecond
	}
	if cfg.Shopify.MaxDelay == 0 {
		cfg.Shopify.MaxDelay = 30 * time.Second
	}
	if cfg.Swap.Version == "" {
		cfg.Swap.Version = "v1"
	}
	if cfg.Swap.MaxRetries == 0 {
		cfg.Swap.MaxRetries = 3
	}
	if cfg.Swap.Timeout == 0 {
		cfg.Swap.Timeout = 30 * time.Second
	}
	if cfg.Swap.BaseDelay == 0 {
		cfg.Swap.BaseDelay = 500 * time.Millisecond
	}
	if cfg.Swap.MaxDelay == 0 {
		cfg.Swap.MaxDelay = 30 * time.Second
	}
	if cfg.Sync.PageSize == 0 {
		cfg.Sync.PageSize = 50
	}
	if cfg.Sync.InterPageDelay == 0 {
		cfg.Sync.InterPageDelay = time.Second
	}
	if cfg.Sync.Lookback == 0 {
		cfg.Sync.Lookback = 30 * 24 * time.Hour
	}
	if cfg.Scheduler.Schedule == "" {
		cfg.Scheduler.Schedule = "0 2 * * *"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	// Validate connection pool settings
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Sync.PageSize < 1 || c.Sync.PageSize > 50 {
		return fmt.Errorf("sync.page_size must be between 1 and 50, got %d", c.Sync.PageSize)
	}

	// Missing platform credentials are a startup-fatal misconfiguration when
	// syncing is on.
	if c.Sync.Enabled {
		if c.Shopify.StoreDomain == "" {
			return fmt.Errorf("shopify.store_domain is required when sync is enabled")
		}
		if c.Shopify.AccessToken == "" {
			return fmt.Errorf("shopify.access_token is required when sync is enabled")
		}
		if c.Swap.Store == "" {
			return fmt.Errorf("swap.store is required when sync is enabled")
		}
		if c.Swap.APIKey == "" {
			return fmt.Errorf("swap.api_key is required when sync is enabled")
		}
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
