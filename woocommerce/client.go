package woocommerce

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/s0up4200/wcfetch/oauth"
)

const (
	// ProductsPath is the products-list route relative to the store URL.
	ProductsPath = "/wp-json/wc/v3/products"

	DefaultPage        = 1
	DefaultPerPage     = 10
	DefaultStatus      = "publish"
	DefaultUserAgent   = "wcfetch/1.0"
	DefaultTimeout     = 30 * time.Second
	MinTimeout         = 1 * time.Second
	MaxTimeout         = 120 * time.Second
	DefaultConcurrency = 4

	// MaxPages bounds how many pages FetchPages and FetchAll will request.
	MaxPages = 1000

	// maxErrorBody bounds the body excerpt in HttpError messages.
	maxErrorBody = 512
	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 32 << 20
)

// Client fetches product pages from a WooCommerce store using signed requests
type Client struct {
	endpoint    string
	signer      *oauth.Signer
	httpClient  *http.Client
	userAgent   string
	status      string
	limiter     *rate.Limiter
	concurrency int
	observer    Observer
	logger      zerolog.Logger
}

// NewClient creates a new WooCommerce client. The key and secret are used
// as-is and only a trailing slash on the store URL is dropped. The store URL
// itself must parse as an absolute http or https URL (scheme case does not
// matter), otherwise ErrInvalidStoreURL is returned: an endpoint without a
// host could never be signed for or reached.
func NewClient(creds Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	storeURL := strings.TrimRight(creds.StoreURL, "/")

	u, err := url.Parse(storeURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStoreURL, storeURL)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(options.timeout, options.insecureSkipVerify)
	}

	if options.insecureSkipVerify {
		logger.Warn().
			Str("store", storeURL).
			Msg("TLS certificate verification is DISABLED; use only against local test stores")
	}

	return &Client{
		endpoint:    storeURL + ProductsPath,
		signer:      oauth.NewSigner(creds.ConsumerKey, creds.ConsumerSecret),
		httpClient:  httpClient,
		userAgent:   options.userAgent,
		status:      options.status,
		limiter:     options.limiter,
		concurrency: options.concurrency,
		observer:    options.observer,
		logger:      logger,
	}, nil
}

func newHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // opt-in for local test stores
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Endpoint returns the products endpoint requests are signed for.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchPage fetches one page of products. Zero or negative page and perPage
// fall back to DefaultPage and DefaultPerPage.
//
// Every failure is a *FetchError, except cancellation of ctx, which returns
// ctx.Err() and no page, and a signing failure, which wraps oauth.ErrNonce.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) (*Page, error) {
	req := PageRequest{Page: page, PerPage: perPage}.normalize()
	log := c.logger.With().
		Str("request_id", uuid.NewString()).
		Int("page", req.Page).
		Int("per_page", req.PerPage).
		Logger()

	start := time.Now()
	result, err := c.fetch(ctx, req, log)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		log.Debug().
			Int("items", len(result.Items)).
			Int("total_items", result.Pagination.TotalItems).
			Int("total_pages", result.Pagination.TotalPages).
			Dur("duration", elapsed).
			Msg("Fetched product page")
		c.observe("success", elapsed, len(result.Items))
	case KindOf(err) != KindUnknown:
		var fe *FetchError
		errors.As(err, &fe)
		log.Warn().
			Str("kind", fe.Kind.String()).
			Int("status", fe.StatusCode).
			Str("code", fe.Code).
			Dur("duration", elapsed).
			Msg(fe.Message)
		c.observe(fe.Kind.String(), elapsed, 0)
	default:
		log.Debug().Err(err).Msg("Product fetch aborted")
	}

	return result, err
}

func (c *Client) observe(outcome string, d time.Duration, items int) {
	if c.observer != nil {
		c.observer.ObserveFetch(outcome, d, items)
	}
}

func (c *Client) fetch(ctx context.Context, req PageRequest, log zerolog.Logger) (*Page, error) {
	params := url.Values{
		"page":     {strconv.Itoa(req.Page)},
		"per_page": {strconv.Itoa(req.PerPage)},
		"status":   {c.status},
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &FetchError{Kind: KindNetwork, Message: err.Error(), Err: err}
		}
	}

	signed, err := c.signer.BuildSignedURL(http.MethodGet, c.endpoint, params)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, signed.Method, signed.URL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Message: "failed to create request", Err: err}
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	log.Debug().Str("endpoint", c.endpoint).Msg("Making WooCommerce API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		return nil, transportError(err)
	}

	raw := rawResponse{
		status: resp.StatusCode,
		header: resp.Header,
		body:   body,
	}
	return parseResponse(raw, req.Page)
}

// transportError turns a transport failure into a network FetchError. The
// signed URL is stripped from *url.Error so the message stays short.
func transportError(err error) *FetchError {
	msg := err.Error()
	var uerr *url.Error
	if errors.As(err, &uerr) {
		msg = uerr.Err.Error()
		if uerr.Timeout() {
			msg = "request timed out: " + msg
		}
	}
	return &FetchError{Kind: KindNetwork, Message: msg, Err: err}
}
