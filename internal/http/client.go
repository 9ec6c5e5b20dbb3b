package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
	"resty.dev/v3"

	"binanceapi/pkg/core"
)

// Header names sent to the exchange.
const (
	HeaderAPIKey      = "X-MBX-APIKEY"
	HeaderUserAgent   = "User-Agent"
	HeaderContentType = "Content-Type"

	ContentTypeForm = "application/x-www-form-urlencoded"
)

var errInvalidHeaderValue = errors.New("value contains characters not allowed in a header")

// Client sends exchange requests over a shared connection pool and
// classifies every answer into a body or a typed error. It never retries.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
	mu     sync.RWMutex
	closed bool
}

type Config struct {
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"min=1ms"`
	UserAgent string        `validate:"required"`
}

// Option configures a Client.
type Option func(*options)

type options struct {
	logger    zerolog.Logger
	transport nethttp.RoundTripper
}

// WithLogger sets the logger for request and response events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt nethttp.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// Request is one outbound call. Query is sent exactly as given.
type Request struct {
	Method string
	Path   string
	Query  string
	// APIKey is sent in the X-MBX-APIKEY header when not empty.
	APIKey string
	// ContentType adds the form content type header.
	ContentType bool
}

// URL returns the path and query as they appear on the request line.
func (r *Request) URL() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Response is a 2xx answer.
type Response struct {
	StatusCode int
	Body       []byte
	Header     nethttp.Header
}

type errorPayload struct {
	Code *int64  `json:"code"`
	Msg  *string `json:"msg"`
}

func NewClient(config *Config, opts ...Option) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	client.SetHeader(HeaderUserAgent, config.UserAgent)
	client.SetLogger(restyLogger{o.logger})
	if o.transport != nil {
		client.SetTransport(o.transport)
	}

	c := &Client{
		client: client,
		logger: o.logger,
	}

	logger := o.logger
	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("path", requestPath(resp)).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Dur("elapsed", resp.Duration()).
			Msg("http response")
		return nil
	})

	return c, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Dispatch performs exactly one HTTP exchange for req.
//
// A 2xx answer is returned as a Response. Any other status yields a
// *core.ExchangeError when the body is an exchange error payload and a
// *core.TransportError otherwise. Failures before a response arrives are
// reported as a *core.TransportError with StatusCode 0.
func (c *Client) Dispatch(ctx context.Context, req *Request) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, core.ErrClientClosed
	}

	r := c.client.R().SetContext(ctx)
	if req.APIKey != "" {
		if !httpguts.ValidHeaderFieldValue(req.APIKey) {
			return nil, &core.HeaderError{Header: HeaderAPIKey, Err: errInvalidHeaderValue}
		}
		r.SetHeader(HeaderAPIKey, req.APIKey)
	}
	if req.ContentType {
		r.SetHeader(HeaderContentType, ContentTypeForm)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Bool("keyed", req.APIKey != "").
		Msg("http request")

	resp, err := r.Execute(req.Method, req.URL())
	if err != nil {
		return nil, &core.TransportError{StatusCode: statusOf(resp), Err: err}
	}

	body := resp.Bytes()
	if resp.IsSuccess() {
		return &Response{
			StatusCode: resp.StatusCode(),
			Body:       body,
			Header:     resp.Header(),
		}, nil
	}

	if exErr := parseExchangeError(resp.StatusCode(), body); exErr != nil {
		return nil, exErr
	}
	return nil, &core.TransportError{StatusCode: resp.StatusCode(), Body: body}
}

// parseExchangeError returns nil unless body carries both code and msg with a code that fits int16.
func parseExchangeError(status int, body []byte) *core.ExchangeError {
	if len(body) == 0 {
		return nil
	}

	var payload errorPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil
	}
	if payload.Code == nil || payload.Msg == nil {
		return nil
	}
	if *payload.Code < math.MinInt16 || *payload.Code > math.MaxInt16 {
		return nil
	}
	return core.NewExchangeError(status, int16(*payload.Code), *payload.Msg)
}

func statusOf(resp *resty.Response) int {
	if resp == nil || resp.RawResponse == nil {
		return 0
	}
	return resp.StatusCode()
}

func requestPath(resp *resty.Response) string {
	if resp.Request == nil || resp.Request.RawRequest == nil || resp.Request.RawRequest.URL == nil {
		return ""
	}
	return resp.Request.RawRequest.URL.Path
}

type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) { l.logger.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.logger.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.logger.Debug().Msgf(format, v...) }
