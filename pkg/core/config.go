package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default values applied by DefaultConfig.
const (
	DefaultRecvWindow uint64 = 5000
	DefaultTimeout           = 25 * time.Second
	DefaultUserAgent         = "binanceapi-go"
)

// Config contains the client configuration: the target host, signing window,
// networking and client-side throttling.
type Config struct {
	Environment Environment `json:"environment" yaml:"environment"`
	// BaseURL overrides the environment host when set.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`

	// RecvWindow is the validity window in milliseconds sent with every signed request.
	// It is passed through unchecked; the exchange enforces its own bounds.
	RecvWindow uint64 `json:"recv_window" yaml:"recv_window"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout   time.Duration `json:"timeout" yaml:"timeout" validate:"min=1ms"`
	UserAgent string        `json:"user_agent" yaml:"user_agent" validate:"required,printascii"`

	// RateLimitRequests of 0 disables client-side throttling.
	RateLimitRequests int           `json:"rate_limit_requests" yaml:"rate_limit_requests" validate:"min=0"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" yaml:"rate_limit_period" validate:"min=0"`

	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config for the global production API.
// Default values: 5000ms recv window, 25s timeout, 1200 weight/min rate limit.
func DefaultConfig() *Config {
	return &Config{
		Environment: EnvironmentMainnet,
		RecvWindow:  DefaultRecvWindow,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,

		RateLimitRequests: 1200,
		RateLimitPeriod:   time.Minute,

		LogLevel: "info",
	}
}

// TestnetConfig returns DefaultConfig pointed at the spot test network.
func TestnetConfig() *Config {
	return DefaultConfig().WithEnvironment(EnvironmentTestnet)
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RateLimitRequests > 0 && c.RateLimitPeriod <= 0 {
		return errors.New("RateLimitPeriod must be positive when rate limiting is enabled")
	}
	if c.Host() == "" {
		return fmt.Errorf("no host for environment %s", c.Environment)
	}
	return nil
}

// Host returns BaseURL when set and the environment host otherwise.
func (c *Config) Host() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return c.Environment.BaseURL()
}

// WithEnvironment sets the target environment and returns the config for chaining.
func (c *Config) WithEnvironment(env Environment) *Config {
	c.Environment = env
	return c
}

// WithBaseURL overrides the environment host and returns the config for chaining.
func (c *Config) WithBaseURL(baseURL string) *Config {
	c.BaseURL = baseURL
	return c
}

// WithRecvWindow sets the signed request validity window in milliseconds.
func (c *Config) WithRecvWindow(ms uint64) *Config {
	c.RecvWindow = ms
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}

// WithLogLevel sets the log level and returns the config for chaining.
func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}
