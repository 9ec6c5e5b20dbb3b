package core

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// AccountInformation is a snapshot of the account: commission rates, permission
// flags and the balance of every asset the exchange reports.
type AccountInformation struct {
	MakerCommission  apd.Decimal `json:"maker_commission"`
	TakerCommission  apd.Decimal `json:"taker_commission"`
	BuyerCommission  apd.Decimal `json:"buyer_commission"`
	SellerCommission apd.Decimal `json:"seller_commission"`
	CanTrade         bool        `json:"can_trade"`
	CanWithdraw      bool        `json:"can_withdraw"`
	CanDeposit       bool        `json:"can_deposit"`
	// Balances keeps the order the exchange sent.
	Balances []Balance `json:"balances"`

	// AccountType, UpdateTime and Permissions are zero when the exchange omits them.
	AccountType string    `json:"account_type,omitempty"`
	UpdateTime  time.Time `json:"update_time,omitzero"`
	Permissions []string  `json:"permissions,omitempty"`
}

// Balance returns the entry for asset, compared exactly and case-sensitively.
func (a *AccountInformation) Balance(asset string) (*Balance, error) {
	for i := range a.Balances {
		if a.Balances[i].Asset == asset {
			b := a.Balances[i]
			return &b, nil
		}
	}
	return nil, &AssetNotFoundError{Asset: asset}
}

// NonZeroBalances returns the entries whose free or locked amount is not zero.
// Entries with unparsable amounts are kept.
func (a *AccountInformation) NonZeroBalances() []Balance {
	var out []Balance
	for _, b := range a.Balances {
		total, err := b.Total()
		if err != nil || !total.IsZero() {
			out = append(out, b)
		}
	}
	return out
}

// Balance represents account balance for a single asset.
// Amounts are kept as the exact decimal text the exchange sent.
type Balance struct {
	// Asset is the currency or token symbol (e.g., "BTC", "USDT").
	Asset string `json:"asset"`
	// Free is the available balance for trading.
	Free string `json:"free"`
	// Locked is the balance locked in open orders.
	Locked string `json:"locked"`
}

// FreeDecimal parses Free without rounding.
func (b Balance) FreeDecimal() (*apd.Decimal, error) {
	return parseAmount(b.Asset, "free", b.Free)
}

// LockedDecimal parses Locked without rounding.
func (b Balance) LockedDecimal() (*apd.Decimal, error) {
	return parseAmount(b.Asset, "locked", b.Locked)
}

// Total returns Free + Locked computed exactly.
func (b Balance) Total() (*apd.Decimal, error) {
	free, err := b.FreeDecimal()
	if err != nil {
		return nil, err
	}
	locked, err := b.LockedDecimal()
	if err != nil {
		return nil, err
	}

	var total apd.Decimal
	if _, err := exactContext.Add(&total, free, locked); err != nil {
		return nil, fmt.Errorf("sum %s balance: %w", b.Asset, err)
	}
	return &total, nil
}

// exactContext rejects any operation that would round.
var exactContext = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(100)
	ctx.Traps = apd.DefaultTraps | apd.Inexact | apd.Rounded
	return ctx
}()

func parseAmount(asset, field, s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse %s %s amount %q: %w", asset, field, s, err)
	}
	return d, nil
}

// ServerTime is the exchange clock reading.
type ServerTime struct {
	Time time.Time `json:"server_time"`
}

// Offset returns how far local is behind the exchange clock.
func (s ServerTime) Offset(local time.Time) time.Duration {
	return s.Time.Sub(local)
}
