package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/wcfetch/woocommerce"
)

// EnvPrefix prefixes environment overrides, e.g. WCFETCH_STORE_CONSUMER_SECRET.
const EnvPrefix = "WCFETCH"

var (
	// ErrInvalidConfig indicates a configuration value is out of range
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrMissingCredentials indicates the store URL, key or secret is unset
	ErrMissingCredentials = errors.New("missing store credentials")
)

// LoadEnv loads variables from a .env file (default ./.env) into the process
// environment, overriding existing values. A missing file is not an error.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

// Load loads the configuration from file and the environment. Without an
// explicit path a missing config file is fine as long as the environment
// provides the store settings.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".wcfetch"))
		}

		// Check /etc
		v.AddConfigPath("/etc/wcfetch/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key is listed so
// AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Store defaults
	v.SetDefault("store.url", "")
	v.SetDefault("store.consumer_key", "")
	v.SetDefault("store.consumer_secret", "")
	v.SetDefault("store.insecure_skip_verify", false)

	// Client defaults
	v.SetDefault("client.timeout", woocommerce.DefaultTimeout)
	v.SetDefault("client.user_agent", woocommerce.DefaultUserAgent)
	v.SetDefault("client.rate_limit", 0)
	v.SetDefault("client.rate_burst", 1)
	v.SetDefault("client.concurrency", woocommerce.DefaultConcurrency)

	// Fetch defaults
	v.SetDefault("fetch.per_page", woocommerce.DefaultPerPage)
	v.SetDefault("fetch.status", woocommerce.DefaultStatus)

	// Metrics defaults
	v.SetDefault("metrics.textfile", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid. Messages name the offending
// key, never the secret value. Logging level and format are case-insensitive,
// matching setupLogger.
func validate(cfg *Config) error {
	var missing []string
	if cfg.Store.URL == "" {
		missing = append(missing, "store.url")
	}
	if cfg.Store.ConsumerKey == "" {
		missing = append(missing, "store.consumer_key")
	}
	if cfg.Store.ConsumerSecret == "" {
		missing = append(missing, "store.consumer_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s must be set", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	u, err := url.Parse(cfg.Store.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: store.url must be an http:// or https:// URL with a host", ErrInvalidConfig)
	}

	if cfg.Client.Timeout < woocommerce.MinTimeout || cfg.Client.Timeout > woocommerce.MaxTimeout {
		return fmt.Errorf("%w: client.timeout must be between %s and %s", ErrInvalidConfig,
			woocommerce.MinTimeout, woocommerce.MaxTimeout)
	}

	if cfg.Client.RateLimit < 0 {
		return fmt.Errorf("%w: client.rate_limit must not be negative", ErrInvalidConfig)
	}

	if cfg.Client.Concurrency < 1 {
		return fmt.Errorf("%w: client.concurrency must be at least 1", ErrInvalidConfig)
	}

	if cfg.Fetch.PerPage < 1 || cfg.Fetch.PerPage > 100 {
		return fmt.Errorf("%w: fetch.per_page must be between 1 and 100", ErrInvalidConfig)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("%w: invalid logging level: %s", ErrInvalidConfig, cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		return fmt.Errorf("%w: invalid logging format: %s", ErrInvalidConfig, cfg.Logging.Format)
	}

	return nil
}
