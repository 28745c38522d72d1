// Package config loads browser-logins settings from config.yaml and BROWSER_LOGINS_* variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ondrovic/browser-logins/internal/utils/retry"
	"github.com/ondrovic/browser-logins/internal/utils/storage"
)

// EnvPrefix prefixes every environment override (e.g. BROWSER_LOGINS_RETRY_ATTEMPTS).
const EnvPrefix = "BROWSER_LOGINS"

// RetryConfig configures the write-back retry.
type RetryConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TOTPConfig lists authenticator accounts as otpauth:// URIs.
type TOTPConfig struct {
	Accounts []string `mapstructure:"accounts"`
}

// Config represents the application configuration.
type Config struct {
	Retry RetryConfig `mapstructure:"retry"`
	Log   LogConfig   `mapstructure:"log"`
	TOTP  TOTPConfig  `mapstructure:"totp"`
}

// Load reads configuration into v (a fresh instance when nil). With an explicit path only that
// file is read and it must exist; otherwise config.yaml in storage.GetConfigDirectory() is read
// when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(storage.GetConfigDirectory())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("retry.attempts", retry.Default.Attempts)
	v.SetDefault("retry.delay", retry.Default.Delay)
	v.SetDefault("log.level", "info")
	v.SetDefault("totp.accounts", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// RetryPolicy returns the write-back policy with unset fields filled from retry.Default.
func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{Attempts: c.Retry.Attempts, Delay: c.Retry.Delay}.Normalize()
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(storage.GetConfigDirectory(), "config.yaml")
}
