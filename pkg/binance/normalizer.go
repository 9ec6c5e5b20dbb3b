package binance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"

	"binanceapi/pkg/core"
)

// binanceBalance represents a single asset balance from Binance API.
type binanceBalance struct {
	Asset  *string `json:"asset" validate:"required"`
	Free   *string `json:"free" validate:"required"`
	Locked *string `json:"locked" validate:"required"`
}

// binanceAccount represents the account information response from Binance API.
type binanceAccount struct {
	MakerCommission  *json.Number     `json:"makerCommission" validate:"required"`
	TakerCommission  *json.Number     `json:"takerCommission" validate:"required"`
	BuyerCommission  *json.Number     `json:"buyerCommission" validate:"required"`
	SellerCommission *json.Number     `json:"sellerCommission" validate:"required"`
	CanTrade         *bool            `json:"canTrade" validate:"required"`
	CanWithdraw      *bool            `json:"canWithdraw" validate:"required"`
	CanDeposit       *bool            `json:"canDeposit" validate:"required"`
	Balances         []binanceBalance `json:"balances" validate:"required,dive"`

	AccountType string   `json:"accountType"`
	UpdateTime  int64    `json:"updateTime"`
	Permissions []string `json:"permissions"`
}

// binanceServerTime represents the server time response from Binance API.
type binanceServerTime struct {
	ServerTime *int64 `json:"serverTime" validate:"required"`
}

// Normalizer converts Binance-specific data structures to canonical core types.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeAccount converts a validated account response to AccountInformation.
// Commission rates are converted without rounding.
func (n *Normalizer) NormalizeAccount(data *binanceAccount) (*core.AccountInformation, error) {
	account := &core.AccountInformation{
		CanTrade:    *data.CanTrade,
		CanWithdraw: *data.CanWithdraw,
		CanDeposit:  *data.CanDeposit,
		Balances:    n.NormalizeBalances(data.Balances),
		AccountType: data.AccountType,
		Permissions: data.Permissions,
	}

	commissions := []struct {
		name string
		src  *json.Number
		dst  *apd.Decimal
	}{
		{"makerCommission", data.MakerCommission, &account.MakerCommission},
		{"takerCommission", data.TakerCommission, &account.TakerCommission},
		{"buyerCommission", data.BuyerCommission, &account.BuyerCommission},
		{"sellerCommission", data.SellerCommission, &account.SellerCommission},
	}
	for _, c := range commissions {
		if _, _, err := c.dst.SetString(c.src.String()); err != nil {
			return nil, &core.DecodeError{Target: "account", Err: fmt.Errorf("field %s: %w", c.name, err)}
		}
	}

	if data.UpdateTime > 0 {
		account.UpdateTime = time.UnixMilli(data.UpdateTime)
	}

	return account, nil
}

// NormalizeBalances converts balance entries, keeping their order and amount text.
func (n *Normalizer) NormalizeBalances(data []binanceBalance) []core.Balance {
	balances := make([]core.Balance, 0, len(data))
	for _, b := range data {
		balances = append(balances, core.Balance{
			Asset:  *b.Asset,
			Free:   *b.Free,
			Locked: *b.Locked,
		})
	}
	return balances
}

// NormalizeServerTime converts the server time response.
func (n *Normalizer) NormalizeServerTime(data *binanceServerTime) core.ServerTime {
	return core.ServerTime{Time: time.UnixMilli(*data.ServerTime)}
}
