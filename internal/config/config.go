package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Checker    CheckerConfig    `mapstructure:"checker"`
	Escalation EscalationConfig `mapstructure:"escalation"`
	Location   LocationConfig   `mapstructure:"location"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig is optional: an empty addr disables the run lock.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CheckerConfig struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	DNSResolver    string        `mapstructure:"dns_resolver"`
	LockTTL        time.Duration `mapstructure:"lock_ttl"`
}

type EscalationConfig struct {
	EventsURL          string `mapstructure:"events_url"`
	RoutingKey         string `mapstructure:"routing_key"`
	FallbackWebhookURL string `mapstructure:"fallback_webhook_url"`
}

type LocationConfig struct {
	TraceURL string `mapstructure:"trace_url"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var errViper viper.ConfigFileNotFoundError
		if errors.As(err, &errViper) {
			slog.Warn("config file not found, using defaults")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	slog.Info("configuration loaded successfully")
	return &config, nil
}

func setDefaults() {
	// app defaults
	viper.SetDefault("app.name", "upwatch")
	viper.SetDefault("app.version", "dev")

	// database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "upwatch")
	viper.SetDefault("database.password", "upwatch")
	viper.SetDefault("database.dbname", "upwatch")
	viper.SetDefault("database.sslmode", "disable")

	// redis defaults: empty addr means no run lock
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// checker defaults
	viper.SetDefault("checker.max_concurrency", 50)
	viper.SetDefault("checker.dns_resolver", "8.8.8.8:53")
	viper.SetDefault("checker.lock_ttl", "5m")

	// escalation defaults: empty routing key and webhook disable escalation
	viper.SetDefault("escalation.events_url", "https://events.pagerduty.com/v2/enqueue")
	viper.SetDefault("escalation.routing_key", "")
	viper.SetDefault("escalation.fallback_webhook_url", "")

	// location defaults
	viper.SetDefault("location.trace_url", "https://www.cloudflare.com/cdn-cgi/trace")

	// logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

func validateConfig(cfg *Config) error {
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}

	if cfg.Database.DBName == "" {
		return errors.New("database name is required")
	}

	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return fmt.Errorf("invalid database port %d", cfg.Database.Port)
	}

	if cfg.Checker.MaxConcurrency < 1 {
		return fmt.Errorf("invalid checker max_concurrency %d", cfg.Checker.MaxConcurrency)
	}

	if cfg.Checker.LockTTL <= 0 {
		return fmt.Errorf("invalid checker lock_ttl %s", cfg.Checker.LockTTL)
	}

	if cfg.Escalation.RoutingKey != "" && cfg.Escalation.EventsURL == "" {
		return errors.New("escalation events_url is required when routing_key is set")
	}

	return nil
}

// GetDSN returns the connection string for PostgreSQL.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// GetRedisOptions returns the client options for Redis.
func (r *RedisConfig) GetRedisOptions() *redis.Options {
	return &redis.Options{
		Addr:            r.Addr,
		Password:        r.Password,
		DB:              r.DB,
		DisableIdentity: true,
	}
}
