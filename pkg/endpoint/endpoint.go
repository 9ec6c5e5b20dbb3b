// Package endpoint maps endpoint identifiers to REST paths.
package endpoint

import "fmt"

// Family groups endpoints that share a path prefix and rate limit pool.
type Family int

const (
	// FamilySpot covers the /api/v3 endpoints.
	FamilySpot Family = iota
	// FamilySAPI covers the /sapi/v1 wallet endpoints.
	FamilySAPI
)

// String returns the string representation of the family ("spot" or "sapi").
func (f Family) String() string {
	return [...]string{
		"spot",
		"sapi",
	}[f]
}

// Endpoint identifies one REST resource.
type Endpoint int

// Spot endpoints.
const (
	Ping Endpoint = iota
	Time
	ExchangeInfo
	Depth
	Trades
	HistoricalTrades
	AggTrades
	Klines
	AvgPrice
	Ticker24hr
	Price
	BookTicker
	Order
	OrderTest
	OpenOrders
	AllOrders
	Oco
	OrderList
	AllOrderList
	OpenOrderList
	Account
	MyTrades
	UserDataStream

	firstSAPI
)

// Wallet endpoints.
const (
	AllCoins Endpoint = iota + firstSAPI
	AssetDetail
	DepositAddress
	SpotFuturesTransfer

	endOfEndpoints
)

type route struct {
	name string
	path string
}

var routes = [...]route{
	Ping:                {"Ping", "/api/v3/ping"},
	Time:                {"Time", "/api/v3/time"},
	ExchangeInfo:        {"ExchangeInfo", "/api/v3/exchangeInfo"},
	Depth:               {"Depth", "/api/v3/depth"},
	Trades:              {"Trades", "/api/v3/trades"},
	HistoricalTrades:    {"HistoricalTrades", "/api/v3/historicalTrades"},
	AggTrades:           {"AggTrades", "/api/v3/aggTrades"},
	Klines:              {"Klines", "/api/v3/klines"},
	AvgPrice:            {"AvgPrice", "/api/v3/avgPrice"},
	Ticker24hr:          {"Ticker24hr", "/api/v3/ticker/24hr"},
	Price:               {"Price", "/api/v3/ticker/price"},
	BookTicker:          {"BookTicker", "/api/v3/ticker/bookTicker"},
	Order:               {"Order", "/api/v3/order"},
	OrderTest:           {"OrderTest", "/api/v3/order/test"},
	OpenOrders:          {"OpenOrders", "/api/v3/openOrders"},
	AllOrders:           {"AllOrders", "/api/v3/allOrders"},
	Oco:                 {"Oco", "/api/v3/order/oco"},
	OrderList:           {"OrderList", "/api/v3/orderList"},
	AllOrderList:        {"AllOrderList", "/api/v3/allOrderList"},
	OpenOrderList:       {"OpenOrderList", "/api/v3/openOrderList"},
	Account:             {"Account", "/api/v3/account"},
	MyTrades:            {"MyTrades", "/api/v3/myTrades"},
	UserDataStream:      {"UserDataStream", "/api/v3/userDataStream"},
	AllCoins:            {"AllCoins", "/sapi/v1/capital/config/getall"},
	AssetDetail:         {"AssetDetail", "/sapi/v1/asset/assetDetail"},
	DepositAddress:      {"DepositAddress", "/sapi/v1/capital/deposit/address"},
	SpotFuturesTransfer: {"SpotFuturesTransfer", "/sapi/v1/futures/transfer"},
}

// Valid reports whether e is a known endpoint.
func (e Endpoint) Valid() bool {
	return e >= 0 && e < endOfEndpoints && routes[e].path != ""
}

// Path returns the REST path of e, or "" if e is not a known endpoint.
func (e Endpoint) Path() string {
	if !e.Valid() {
		return ""
	}
	return routes[e].path
}

// Family returns the family e belongs to.
func (e Endpoint) Family() Family {
	if e >= firstSAPI {
		return FamilySAPI
	}
	return FamilySpot
}

func (e Endpoint) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Endpoint(%d)", int(e))
	}
	return routes[e].name
}

// All returns every known endpoint in declaration order.
func All() []Endpoint {
	out := make([]Endpoint, 0, len(routes))
	for e := Endpoint(0); e < endOfEndpoints; e++ {
		if e.Valid() {
			out = append(out, e)
		}
	}
	return out
}
