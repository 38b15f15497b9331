package config

import (
	"fmt"
	"time"

	"github.com/s0up4200/wcfetch/woocommerce"
)

// Config represents the complete configuration structure
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Client  ClientConfig  `mapstructure:"client"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StoreConfig holds WooCommerce store connection details
type StoreConfig struct {
	URL            string `mapstructure:"url"`
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
	// InsecureSkipVerify disables TLS certificate checks. Local test stores only.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// ClientConfig contains HTTP client settings
type ClientConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	RateBurst   int           `mapstructure:"rate_burst"`
	Concurrency int           `mapstructure:"concurrency"`
}

// FetchConfig contains product listing defaults
type FetchConfig struct {
	PerPage int    `mapstructure:"per_page"`
	Status  string `mapstructure:"status"`
}

// MetricsConfig controls metrics export
type MetricsConfig struct {
	// Textfile, if set, receives Prometheus metrics after every run.
	Textfile string `mapstructure:"textfile"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Credentials returns the store credentials for the WooCommerce client
func (c *Config) Credentials() woocommerce.Credentials {
	return woocommerce.Credentials{
		StoreURL:       c.Store.URL,
		ConsumerKey:    c.Store.ConsumerKey,
		ConsumerSecret: c.Store.ConsumerSecret,
	}
}

// ClientOptions translates the client settings into woocommerce options
func (c *Config) ClientOptions() []woocommerce.Option {
	opts := []woocommerce.Option{
		woocommerce.WithTimeout(c.Client.Timeout),
		woocommerce.WithUserAgent(c.Client.UserAgent),
		woocommerce.WithStatus(c.Fetch.Status),
		woocommerce.WithConcurrency(c.Client.Concurrency),
	}
	if c.Client.RateLimit > 0 {
		opts = append(opts, woocommerce.WithRateLimit(c.Client.RateLimit, c.Client.RateBurst))
	}
	if c.Store.InsecureSkipVerify {
		opts = append(opts, woocommerce.WithInsecureSkipVerify())
	}
	return opts
}

// Redacted returns a one-line summary that is safe to log
func (c *Config) Redacted() string {
	return fmt.Sprintf("store=%s consumer_key=%s consumer_secret=[REDACTED] timeout=%s per_page=%d",
		c.Store.URL, c.Store.ConsumerKey, c.Client.Timeout, c.Fetch.PerPage)
}
