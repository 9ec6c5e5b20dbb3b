package binance

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	httpClient "binanceapi/internal/http"
	"binanceapi/internal/decode"
	"binanceapi/internal/ratelimit"
	"binanceapi/internal/signing"
	"binanceapi/pkg/auth"
	"binanceapi/pkg/core"
	"binanceapi/pkg/endpoint"
)

// Client is a handle to one exchange host. It keeps its own copy of the
// config, is immutable after New and is safe for concurrent use.
type Client struct {
	config      *core.Config
	creds       auth.Credentials
	signer      *signing.Signer
	httpClient  *httpClient.Client
	rateLimiter *ratelimit.RateLimiter
	logger      zerolog.Logger
	normalizer  *Normalizer
	now         func() time.Time
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds configuration options for the Client.
type Options struct {
	Logger      zerolog.Logger
	Clock       func() time.Time
	Transport   http.RoundTripper
	RateLimiter *ratelimit.RateLimiter
}

// WithLogger returns an option that sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithClock returns an option that replaces the clock used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Clock = now
	}
}

// WithHTTPTransport returns an option that replaces the HTTP round tripper.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(o *Options) {
		o.Transport = rt
	}
}

// WithRateLimiter returns an option that shares a rate limiter between clients.
// It takes precedence over the limit in the config.
func WithRateLimiter(rl *ratelimit.RateLimiter) Option {
	return func(o *Options) {
		o.RateLimiter = rl
	}
}

// New creates a Client for creds against the host selected by config.
// A nil config means core.DefaultConfig and nil credentials mean auth.Anonymous.
func New(creds auth.Credentials, config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	cfg := *config
	config = &cfg
	if creds == nil {
		creds = auth.Anonymous{}
	}

	options := &Options{
		Logger: zerolog.Nop(),
		Clock:  time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger.With().Str("component", "binance").Logger()
	if config.LogLevel != "" {
		level, err := zerolog.ParseLevel(config.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		logger = logger.Level(level)
	}

	var signer *signing.Signer
	if secret, err := auth.APISecret(creds); err == nil {
		signer, err = signing.New(secret, signing.WithClock(options.Clock))
		if err != nil {
			return nil, fmt.Errorf("create signer: %w", err)
		}
	}

	hc, err := httpClient.NewClient(&httpClient.Config{
		BaseURL:   config.Host(),
		Timeout:   config.Timeout,
		UserAgent: config.UserAgent,
	}, httpClient.WithLogger(logger), httpClient.WithTransport(options.Transport))
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	rl := options.RateLimiter
	if rl == nil && config.RateLimitRequests > 0 {
		rl = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	}

	logger.Debug().
		Object("credentials", creds).
		Str("host", config.Host()).
		Uint64("recv_window", config.RecvWindow).
		Msg("client created")

	return &Client{
		config:      config,
		creds:       creds,
		signer:      signer,
		httpClient:  hc,
		rateLimiter: rl,
		logger:      logger,
		normalizer:  NewNormalizer(),
		now:         options.Clock,
	}, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c.httpClient != nil {
		return c.httpClient.Close()
	}
	return nil
}

// String describes the client without revealing credentials.
func (c *Client) String() string {
	return fmt.Sprintf("binance.Client{host: %s, credentials: %s}", c.config.Host(), c.creds)
}

// Do runs the request pipeline for ep and returns the raw 2xx body.
//
// Credentials are checked before anything else, so a call the credentials
// cannot authorize fails with core.ErrMissingCredential without network
// traffic. Signed requests get a fresh timestamp on every call.
func (c *Client) Do(ctx context.Context, ep endpoint.Endpoint, req *core.Request) ([]byte, error) {
	if !ep.Valid() {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownEndpoint, ep)
	}

	var apiKey string
	if req.Security != core.SecurityNone {
		key, err := auth.APIKey(c.creds)
		if err != nil {
			return nil, err
		}
		apiKey = key
	}
	if req.Security == core.SecuritySigned && c.signer == nil {
		_, err := auth.APISecret(c.creds)
		return nil, err
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx, ep.Family().String(), req.Weight); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrRateLimited, err)
		}
	}

	query := req.Query.Encode()
	if req.Security == core.SecuritySigned {
		signed, err := c.signer.Sign(req.Query, c.config.RecvWindow)
		if err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
		query = signed.String()
	}

	resp, err := c.httpClient.Dispatch(ctx, &httpClient.Request{
		Method:      req.Method,
		Path:        ep.Path(),
		Query:       query,
		APIKey:      apiKey,
		ContentType: req.SendsContentType(),
	})
	if err != nil {
		c.logger.Debug().
			Err(err).
			Stringer("endpoint", ep).
			Stringer("kind", core.KindOf(err)).
			Msg("request failed")
		return nil, err
	}
	return resp.Body, nil
}

// Call runs the request pipeline for ep and decodes the answer into T.
// Fields of T tagged validate:"required" must be present in the body.
func Call[T any](ctx context.Context, c *Client, ep endpoint.Endpoint, req *core.Request) (*T, error) {
	body, err := c.Do(ctx, ep, req)
	if err != nil {
		return nil, err
	}
	return decode.Into[T](body, ep.String())
}
