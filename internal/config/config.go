// Package config provides Viper-based configuration management for
// kolikctl.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete kolikctl configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	CSRF    CSRFConfig    `mapstructure:"csrf"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CSRFConfig names the double-submit cookie and header. Both must
// match the backend exactly; they are part of the wire contract.
type CSRFConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	HeaderName string `mapstructure:"header_name"`
}

// SessionConfig contains local session persistence settings.
type SessionConfig struct {
	// JarPath is where the cookie jar is persisted between runs.
	// Empty selects a default under the user config directory.
	JarPath string `mapstructure:"jar_path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".kolikctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/kolikctl")
	}

	v.SetEnvPrefix("KOLIKCTL")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Session.JarPath == "" {
		cfg.Session.JarPath = defaultJarPath()
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", "10s")

	v.SetDefault("csrf.cookie_name", "csrftoken")
	v.SetDefault("csrf.header_name", "X-CSRFToken")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)
}

// defaultJarPath places the cookie jar under the user config dir.
func defaultJarPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".kolikctl-cookies.json")
	}
	return filepath.Join(dir, "kolikctl", "cookies.json")
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %s", cfg.API.BaseURL)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if cfg.CSRF.CookieName == "" || cfg.CSRF.HeaderName == "" {
		return fmt.Errorf("csrf.cookie_name and csrf.header_name cannot be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	return nil
}

// BaseURL returns the parsed API base URL. Load has already validated
// it.
func (c *Config) BaseURL() *url.URL {
	u, _ := url.Parse(c.API.BaseURL)
	return u
}
