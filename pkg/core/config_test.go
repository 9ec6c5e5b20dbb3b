package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, EnvironmentMainnet, config.Environment)
	assert.Empty(t, config.BaseURL)
	assert.Equal(t, uint64(5000), config.RecvWindow)
	assert.Equal(t, 25*time.Second, config.Timeout)
	assert.Equal(t, "binanceapi-go", config.UserAgent)
	assert.Equal(t, 1200, config.RateLimitRequests)
	assert.Equal(t, time.Minute, config.RateLimitPeriod)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "https://api.binance.com", config.Host())
	assert.NoError(t, config.Validate())
}

func TestTestnetConfig(t *testing.T) {
	config := TestnetConfig()

	assert.Equal(t, EnvironmentTestnet, config.Environment)
	assert.Equal(t, "https://testnet.binance.vision", config.Host())
}

func TestConfig_Host(t *testing.T) {
	config := DefaultConfig().WithEnvironment(EnvironmentMainnetUS)
	assert.Equal(t, "https://api.binance.us", config.Host())

	config.WithBaseURL("http://127.0.0.1:8080")
	assert.Equal(t, "http://127.0.0.1:8080", config.Host())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid_config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "zero_recv_window_passes_through",
			config:  DefaultConfig().WithRecvWindow(0),
			wantErr: false,
		},
		{
			name:    "huge_recv_window_passes_through",
			config:  DefaultConfig().WithRecvWindow(1 << 40),
			wantErr: false,
		},
		{
			name:    "invalid_timeout",
			config:  DefaultConfig().WithTimeout(-1 * time.Second),
			wantErr: true,
			errMsg:  "Timeout",
		},
		{
			name:    "invalid_base_url",
			config:  DefaultConfig().WithBaseURL("not a url"),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name: "missing_user_agent",
			config: func() *Config {
				c := DefaultConfig()
				c.UserAgent = ""
				return c
			}(),
			wantErr: true,
			errMsg:  "UserAgent",
		},
		{
			name: "user_agent_with_newline",
			config: func() *Config {
				c := DefaultConfig()
				c.UserAgent = "agent\r\nX-Injected: 1"
				return c
			}(),
			wantErr: true,
			errMsg:  "UserAgent",
		},
		{
			name:    "invalid_rate_limit_period",
			config:  DefaultConfig().WithRateLimit(100, 0),
			wantErr: true,
			errMsg:  "RateLimitPeriod",
		},
		{
			name:    "rate_limit_disabled",
			config:  DefaultConfig().WithRateLimit(0, 0),
			wantErr: false,
		},
		{
			name:    "negative_rate_limit",
			config:  DefaultConfig().WithRateLimit(-1, time.Second),
			wantErr: true,
			errMsg:  "RateLimitRequests",
		},
		{
			name:    "invalid_log_level",
			config:  DefaultConfig().WithLogLevel("verbose"),
			wantErr: true,
			errMsg:  "LogLevel",
		},
		{
			name:    "unknown_environment",
			config:  DefaultConfig().WithEnvironment(Environment(42)),
			wantErr: true,
			errMsg:  "environment(42)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Chaining(t *testing.T) {
	config := DefaultConfig().
		WithEnvironment(EnvironmentTestnet).
		WithRecvWindow(10000).
		WithTimeout(5*time.Second).
		WithRateLimit(600, 30*time.Second).
		WithLogLevel("debug")

	assert.Equal(t, EnvironmentTestnet, config.Environment)
	assert.Equal(t, uint64(10000), config.RecvWindow)
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.Equal(t, 600, config.RateLimitRequests)
	assert.Equal(t, 30*time.Second, config.RateLimitPeriod)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
environment: testnet
recv_window: 10000
timeout: 10s
rate_limit_requests: 600
rate_limit_period: 1m
log_level: debug
`)

	config, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, EnvironmentTestnet, config.Environment)
	assert.Equal(t, uint64(10000), config.RecvWindow)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, 600, config.RateLimitRequests)
	assert.Equal(t, time.Minute, config.RateLimitPeriod)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, DefaultUserAgent, config.UserAgent, "absent keys keep defaults")
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		errMsg string
	}{
		{"unknown_environment", "environment: staging\n", "unknown environment"},
		{"bad_duration", "timeout: soon\n", "parse config"},
		{"invalid_value", "log_level: loud\n", "invalid config"},
		{"malformed_yaml", "environment: [testnet\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://localhost:9000\n"), 0o600))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", config.Host())

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
