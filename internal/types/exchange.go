package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExchangeType string

const (
	ExchangeTypeBinance        ExchangeType = "binance"
	ExchangeTypeBinanceTestnet ExchangeType = "binance-testnet"
	ExchangeTypePaper          ExchangeType = "paper"
)

// AllExchangeTypes lists every exchange this binary can construct.
var AllExchangeTypes = []ExchangeType{
	ExchangeTypeBinance,
	ExchangeTypeBinanceTestnet,
	ExchangeTypePaper,
}

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// ExchangeCredentials carries per-instance exchange selection and API
// credentials, handed to the job by the scheduler trigger.
type ExchangeCredentials struct {
	Type       ExchangeType `json:"type" yaml:"type" validate:"required,oneof=binance binance-testnet paper"`
	APIKey     string       `json:"api_key" yaml:"api_key"`
	APISecret  string       `json:"api_secret" yaml:"api_secret"`
	Passphrase string       `json:"passphrase" yaml:"passphrase"`
	// TestMode forces a dry-run cycle even when credentials are present.
	TestMode bool `json:"test_mode" yaml:"test_mode"`
}

// IsInTestMode reports whether the cycle must run without placing live orders.
func (c *ExchangeCredentials) IsInTestMode() bool {
	return c.TestMode || c.APIKey == "" || c.APISecret == ""
}

// OrderResult is the exchange's immediate response to a market order.
type OrderResult struct {
	OrderID string
}

// OrderDetails is the confirmed state of a placed order, fetched after the
// exchange reports success.
type OrderDetails struct {
	OrderID  string
	Symbol   string
	Side     OrderSide
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Fills    int
	Filled   bool
	Time     time.Time
}
