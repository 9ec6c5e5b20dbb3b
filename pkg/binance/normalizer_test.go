package binance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binanceapi/pkg/core"
)

func ptr[T any](v T) *T { return &v }

func newWireAccount(maker string) *binanceAccount {
	return &binanceAccount{
		MakerCommission:  ptr(json.Number(maker)),
		TakerCommission:  ptr(json.Number("0.00100000")),
		BuyerCommission:  ptr(json.Number("0")),
		SellerCommission: ptr(json.Number("0")),
		CanTrade:         ptr(true),
		CanWithdraw:      ptr(false),
		CanDeposit:       ptr(true),
		Balances: []binanceBalance{
			{Asset: ptr("BNB"), Free: ptr("0.00000001"), Locked: ptr("1.5")},
		},
		UpdateTime: 1499827319559,
	}
}

func TestNormalizer_NormalizeAccount(t *testing.T) {
	n := NewNormalizer()

	account, err := n.NormalizeAccount(newWireAccount("15"))
	require.NoError(t, err)

	assert.Equal(t, "15", account.MakerCommission.String())
	assert.Equal(t, "0.00100000", account.TakerCommission.Text('f'))
	assert.True(t, account.CanTrade)
	assert.False(t, account.CanWithdraw)
	assert.Equal(t, time.UnixMilli(1499827319559), account.UpdateTime)
	assert.Equal(t, []core.Balance{{Asset: "BNB", Free: "0.00000001", Locked: "1.5"}}, account.Balances)
}

func TestNormalizer_NormalizeAccount_BadCommission(t *testing.T) {
	n := NewNormalizer()

	_, err := n.NormalizeAccount(newWireAccount("fifteen"))

	var decodeErr *core.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "account", decodeErr.Target)
	assert.ErrorContains(t, err, "makerCommission")
}

func TestNormalizer_NormalizeServerTime(t *testing.T) {
	n := NewNormalizer()

	st := n.NormalizeServerTime(&binanceServerTime{ServerTime: ptr(int64(1499827319559))})
	assert.Equal(t, time.UnixMilli(1499827319559), st.Time)
}
