// Package client is a typed client for the device management REST api.
package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type options struct {
	tlsConfig  *tls.Config
	userAgent  string
	timeout    time.Duration
	retryCount int
	logger     *zap.SugaredLogger
	debug      bool
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{
		userAgent: "devctl",
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

type Option func(o *options) error

func WithUserAgent(userAgent string) Option {
	return func(o *options) error {
		o.userAgent = userAgent
		return nil
	}
}

func WithTLSConfig(config *tls.Config) Option {
	return func(o *options) error {
		o.tlsConfig = config
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", timeout)
		}
		o.timeout = timeout
		return nil
	}
}

// WithRetries retries requests that fail to connect up to count times.
func WithRetries(count int) Option {
	return func(o *options) error {
		if count < 0 {
			return fmt.Errorf("retry count must not be negative, got %d", count)
		}
		o.retryCount = count
		return nil
	}
}

// WithLogger routes the client diagnostics to logger.  With debug set every
// request and response is logged.
func WithLogger(logger *zap.SugaredLogger, debug bool) Option {
	return func(o *options) error {
		o.logger = logger
		o.debug = debug
		return nil
	}
}

type Client struct {
	baseURL *url.URL
	resty   *resty.Client
}

func NewClient(_ context.Context, addr string, opts ...Option) (*Client, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(strings.TrimSuffix(addr, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid service url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid service url %q: scheme must be http or https", addr)
	}

	r := resty.New().
		SetBaseURL(baseURL.String()).
		SetHeader("User-Agent", o.userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(o.timeout).
		SetRetryCount(o.retryCount)
	if o.tlsConfig != nil {
		r.SetTLSClientConfig(o.tlsConfig)
	}
	if o.logger != nil {
		r.SetLogger(o.logger)
		r.SetDebug(o.debug)
	}

	return &Client{
		baseURL: baseURL,
		resty:   r,
	}, nil
}

// BaseURL is the address of the api server.
func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.resty.R().SetContext(ctx)
}
