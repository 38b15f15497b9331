package woocommerce

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout            time.Duration
	userAgent          string
	status             string
	insecureSkipVerify bool
	httpClient         *http.Client
	limiter            *rate.Limiter
	concurrency        int
	observer           Observer
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		status:      DefaultStatus,
		concurrency: DefaultConcurrency,
	}
}

// WithTimeout sets the HTTP client timeout. Values outside
// [MinTimeout, MaxTimeout] are clamped.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = min(max(timeout, MinTimeout), MaxTimeout)
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithStatus overrides the product status filter (default "publish").
func WithStatus(status string) Option {
	return func(o *clientOptions) {
		if status != "" {
			o.status = status
		}
	}
}

// WithInsecureSkipVerify disables certificate verification.
// Use with caution and only for local test stores with self-signed certificates.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) {
		o.insecureSkipVerify = true
	}
}

// WithHTTPClient replaces the HTTP client. Timeout and TLS settings of the
// given client are used as-is.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithRateLimit limits outgoing requests to perSecond with the given burst.
// A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *clientOptions) {
		if perSecond <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithConcurrency sets how many pages FetchPages requests at once.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithObserver registers an Observer notified after every FetchPage.
func WithObserver(observer Observer) Option {
	return func(o *clientOptions) {
		o.observer = observer
	}
}
