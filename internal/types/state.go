package types

import (
	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeTest       Mode = "TEST"
	ModeProduction Mode = "PRODUCTION"
)

type OrderKind string

const (
	OrderKindBuy      OrderKind = "BUYING"
	OrderKindSell     OrderKind = "SELLING"
	OrderKindStopLoss OrderKind = "STOPLOSS"
)

// ActionState is the only part of the trading state whose mutations survive to
// the next cycle. It is persisted alongside the strategy configuration.
type ActionState struct {
	// BoughtPrice is the fill price of the last buy, zero when no position is
	// on record.
	BoughtPrice decimal.Decimal `json:"bought_price" yaml:"bought_price"`
	// StopLossReached is set when a stop-loss fill suspended trading.
	StopLossReached bool `json:"stop_loss_reached" yaml:"stop_loss_reached"`
	// CurrentStopLossPauseCycle counts cycles elapsed since the stop-loss fired.
	CurrentStopLossPauseCycle int `json:"current_stop_loss_pause_cycle" yaml:"current_stop_loss_pause_cycle"`
}

// PriceAverage is the rolling average over stored prices together with the
// sample count actually used.
type PriceAverage struct {
	Value decimal.Decimal
	Count int
}

// AssetBalance is the free balance of the traded pair, split by side.
type AssetBalance struct {
	Base  decimal.Decimal
	Quote decimal.Decimal
}

// SymbolInfo describes the traded symbol as reported by the bound exchange.
type SymbolInfo struct {
	Name        string
	BaseAsset   string
	QuoteAsset  string
	MinNotional decimal.Decimal
}

// OrderIntent is the per-order-kind sub-snapshot computed by a readiness rule.
type OrderIntent struct {
	// AvailableFund is the amount available to commit to this order kind.
	AvailableFund decimal.Decimal
	// Change is the percentage delta of the current price against the average.
	Change decimal.Decimal
	// PriceReached is true when the price crossed the configured step threshold.
	PriceReached bool
	// IsReady is true only when the paired readiness rule succeeded this cycle.
	IsReady bool
}

// MarketSnapshot is the cycle-scoped runtime state. It is rebuilt from scratch
// every cycle and must not be read before the sequence rules populate it.
type MarketSnapshot struct {
	Price          decimal.Decimal
	Average        PriceAverage
	AvailableAsset AssetBalance
	Symbol         SymbolInfo
	Mode           Mode

	Buy      OrderIntent
	Sell     OrderIntent
	StopLoss OrderIntent
}

// Intent returns a pointer to the sub-snapshot for the given order kind.
func (m *MarketSnapshot) Intent(kind OrderKind) *OrderIntent {
	switch kind {
	case OrderKindBuy:
		return &m.Buy
	case OrderKindSell:
		return &m.Sell
	case OrderKindStopLoss:
		return &m.StopLoss
	default:
		return nil
	}
}

// Solbot is the trading state aggregate passed through every rule of a cycle.
// It is constructed fresh per tick and discarded after write-back; only
// Actions and the appended price-history entry outlive the tick.
type Solbot struct {
	Strategy *StrategyConfig
	Actions  *ActionState
	Market   *MarketSnapshot
}

// NewSolbot builds the cycle-scoped trading state from persisted configuration
// and action state.
func NewSolbot(strategy *StrategyConfig, actions *ActionState) *Solbot {
	if actions == nil {
		actions = &ActionState{}
	}

	return &Solbot{
		Strategy: strategy,
		Actions:  actions,
		Market:   &MarketSnapshot{},
	}
}
