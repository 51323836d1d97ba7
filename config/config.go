// Package config loads client configuration from a quoteme.yaml file,
// environment variables, or built-in defaults, in that order of
// precedence (env over file over defaults).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type APIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

type IdentityConfig struct {
	TokenURL string `mapstructure:"token_url"`
	ClientID string `mapstructure:"client_id"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"` // SQLite database file
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Identity IdentityConfig `mapstructure:"identity"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Logger builds a zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging level %q: %w", c.Logging.Level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}

// Load reads configuration. A missing config file is not an error; the
// defaults describe a local development backend.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("quoteme")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.quoteme")

	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout_ms", 15000)
	v.SetDefault("identity.token_url", "http://localhost:8000/oauth/token")
	v.SetDefault("identity.client_id", "quoteme-client")
	v.SetDefault("database.path", "quoteme.db")
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("QUOTEME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
