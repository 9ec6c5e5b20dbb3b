package binance

import (
	"context"
	"net/http"
	"time"

	"binanceapi/pkg/core"
	"binanceapi/pkg/endpoint"
)

// Ping tests connectivity to the REST API.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, endpoint.Ping, core.NewRequest(http.MethodGet))
	return err
}

// ServerTime returns the exchange clock.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	data, err := Call[binanceServerTime](ctx, c, endpoint.Time, core.NewRequest(http.MethodGet))
	if err != nil {
		return time.Time{}, err
	}
	return c.normalizer.NormalizeServerTime(data).Time, nil
}

// ClockOffset returns how far the client clock is behind the exchange clock,
// measured at the midpoint of the round trip.
func (c *Client) ClockOffset(ctx context.Context) (time.Duration, error) {
	sent := c.now()
	server, err := c.ServerTime(ctx)
	if err != nil {
		return 0, err
	}
	received := c.now()
	midpoint := sent.Add(received.Sub(sent) / 2)
	return core.ServerTime{Time: server}.Offset(midpoint), nil
}
