package binance

import (
	"context"
	"net/http"

	"binanceapi/pkg/core"
	"binanceapi/pkg/endpoint"
)

// accountWeight is the request weight of the account endpoint.
const accountWeight = 20

// GetAccount retrieves the account snapshot with a signed request.
func (c *Client) GetAccount(ctx context.Context) (*core.AccountInformation, error) {
	req := core.NewSignedRequest(http.MethodGet).SetWeight(accountWeight)

	data, err := Call[binanceAccount](ctx, c, endpoint.Account, req)
	if err != nil {
		return nil, err
	}
	return c.normalizer.NormalizeAccount(data)
}

// GetBalance fetches a fresh account snapshot and returns the entry for asset.
// The asset is matched exactly and case-sensitively; an absent asset yields
// a *core.AssetNotFoundError.
func (c *Client) GetBalance(ctx context.Context, asset string) (*core.Balance, error) {
	account, err := c.GetAccount(ctx)
	if err != nil {
		return nil, err
	}
	return account.Balance(asset)
}
