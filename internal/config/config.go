package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

// DSN returns the Postgres connection string
func (d DatabaseConfig) DSN() string {
	return d.URL
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	InterestRate     string `mapstructure:"PLAN_INTEREST_RATE"`
	DurationCatalog  string `mapstructure:"PLAN_DURATION_CATALOG"`
	MaxRetries       int    `mapstructure:"PLAN_MAX_PAYMENT_RETRIES"`
	DefaultThreshold int    `mapstructure:"PLAN_DEFAULT_THRESHOLD"`
	ScheduleCacheTTL string `mapstructure:"SCHEDULE_CACHE_TTL"`
}

type GatewayConfig struct {
	URL       string `mapstructure:"ECHECK_API_URL"`
	ClientID  string `mapstructure:"ECHECK_CLIENT_ID"`
	APIKey    string `mapstructure:"ECHECK_API_KEY"`
	TestMode  bool   `mapstructure:"ECHECK_TEST_MODE"`
	TimeoutMS int    `mapstructure:"ECHECK_TIMEOUT_MS"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("PLAN_INTEREST_RATE", "0.19")
	viper.SetDefault("PLAN_DURATION_CATALOG", "1,3,6,12")
	viper.SetDefault("PLAN_MAX_PAYMENT_RETRIES", 3)
	viper.SetDefault("PLAN_DEFAULT_THRESHOLD", 2)
	viper.SetDefault("SCHEDULE_CACHE_TTL", "10s")
	viper.SetDefault("ECHECK_TEST_MODE", true)
	viper.SetDefault("ECHECK_TIMEOUT_MS", 15000)
	viper.SetDefault("SCHEDULER_TIMEZONE", "America/New_York")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.MaxRetries < 0 {
		return fmt.Errorf("PLAN_MAX_PAYMENT_RETRIES must not be negative")
	}

	if c.Business.DefaultThreshold <= 0 {
		return fmt.Errorf("PLAN_DEFAULT_THRESHOLD must be greater than 0")
	}

	// Validate interest rate
	rate, err := decimal.NewFromString(c.Business.InterestRate)
	if err != nil {
		return fmt.Errorf("PLAN_INTEREST_RATE must be a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("PLAN_INTEREST_RATE must not be negative")
	}

	// Validate duration catalog
	durations, err := parseDurations(c.Business.DurationCatalog)
	if err != nil {
		return err
	}
	if len(durations) == 0 {
		return fmt.Errorf("PLAN_DURATION_CATALOG must not be empty")
	}

	// Validate schedule cache TTL
	if _, err := time.ParseDuration(c.Business.ScheduleCacheTTL); err != nil {
		return fmt.Errorf("SCHEDULE_CACHE_TTL must be a valid duration: %w", err)
	}

	// Validate health check timeout
	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	if !c.Gateway.TestMode && c.Gateway.URL == "" {
		return fmt.Errorf("ECHECK_API_URL is required when ECHECK_TEST_MODE is false")
	}

	return nil
}

func parseDurations(catalog string) ([]int, error) {
	parts := strings.Split(catalog, ",")
	durations := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("PLAN_DURATION_CATALOG contains invalid duration %q", part)
		}
		durations = append(durations, d)
	}
	return durations, nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetInterestRate returns the configured flat interest rate as decimal
func (c *Config) GetInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.InterestRate)
	return rate
}

// GetDurationCatalog returns the configured plan durations in catalog order
func (c *Config) GetDurationCatalog() []int {
	durations, _ := parseDurations(c.Business.DurationCatalog)
	return durations
}

// GetScheduleCacheTTL returns the schedule cache TTL as duration
func (c *Config) GetScheduleCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Business.ScheduleCacheTTL)
	return ttl
}

// GetGatewayTimeout returns the eCheck gateway request timeout
func (c *Config) GetGatewayTimeout() time.Duration {
	return time.Duration(c.Gateway.TimeoutMS) * time.Millisecond
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
