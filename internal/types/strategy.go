package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/solbo-lab/solbo/pkg/errors"
)

type StrategyKind string

type AverageMethod string

type CommissionKind string

const (
	StrategyKindBuyDeepSellHigh StrategyKind = "buy-deep-sell-high"
)

const (
	AverageMethodSimple      AverageMethod = "simple"
	AverageMethodExponential AverageMethod = "exponential"
)

const (
	CommissionKindZero  CommissionKind = "zero"
	CommissionKindTaker CommissionKind = "taker"
)

// AllStrategyKinds lists every recognized strategy kind.
var AllStrategyKinds = []StrategyKind{
	StrategyKindBuyDeepSellHigh,
}

// AllAverageMethods lists every recognized averaging method.
var AllAverageMethods = []AverageMethod{
	AverageMethodSimple,
	AverageMethodExponential,
}

// AllCommissionKinds lists every recognized commission kind.
var AllCommissionKinds = []CommissionKind{
	CommissionKindZero,
	CommissionKindTaker,
}

// StrategyConfig is the operator-set, persisted configuration for one strategy
// instance. It is reloaded at the start of every cycle and treated as read-only
// during a run.
type StrategyConfig struct {
	Kind   StrategyKind `json:"kind" yaml:"kind" jsonschema:"title=Strategy Kind" validate:"required,oneof=buy-deep-sell-high"`
	Symbol string       `json:"symbol" yaml:"symbol" jsonschema:"title=Symbol,description=Exchange symbol to trade (e.g. BTCUSDT)" validate:"required"`

	// AverageMethod selects how the rolling average over stored prices is computed.
	AverageMethod AverageMethod `json:"average_method" yaml:"average_method" jsonschema:"title=Average Method" validate:"required,oneof=simple exponential"`
	// AverageWindow is the number of most recent prices used for averaging.
	AverageWindow int `json:"average_window" yaml:"average_window" jsonschema:"title=Average Window" validate:"required,gt=0"`

	// BuyStep is the percentage the current price must fall below the average
	// before a buy becomes ready.
	BuyStep float64 `json:"buy_step" yaml:"buy_step" jsonschema:"title=Buy Step %" validate:"gt=0,lte=100"`
	// SellStep is the percentage the current price must rise above the average
	// before a sell becomes ready.
	SellStep float64 `json:"sell_step" yaml:"sell_step" jsonschema:"title=Sell Step %" validate:"gt=0,lte=100"`
	// StopLossStep is the percentage the current price must fall below the
	// average before a stop-loss becomes ready. Zero disables the stop-loss.
	StopLossStep float64 `json:"stop_loss_step" yaml:"stop_loss_step" jsonschema:"title=Stop Loss Step %" validate:"gte=0,lte=100"`
	// StopLossPauseCycles is the number of cycles trading stays suppressed
	// after a stop-loss fires.
	StopLossPauseCycles int `json:"stop_loss_pause_cycles" yaml:"stop_loss_pause_cycles" jsonschema:"title=Stop Loss Pause Cycles" validate:"gte=0"`

	// FundPercentage is the fraction of the quote-asset balance committed to a
	// single buy, in (0, 1].
	FundPercentage float64 `json:"fund_percentage" yaml:"fund_percentage" jsonschema:"title=Fund Percentage" validate:"gt=0,lte=1"`

	CommissionKind CommissionKind `json:"commission_kind" yaml:"commission_kind" jsonschema:"title=Commission Kind" validate:"required,oneof=zero taker"`

	// ClearOnStartup empties the stored price history on the first cycle after
	// process start.
	ClearOnStartup bool `json:"clear_on_startup" yaml:"clear_on_startup" jsonschema:"title=Clear On Startup"`
}

// IsStopLossOn reports whether the stop-loss order kind is enabled.
func (c *StrategyConfig) IsStopLossOn() bool {
	return c.StopLossStep > 0
}

// Validate validates the StrategyConfig struct.
func (c *StrategyConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid strategy config", err)
	}

	return nil
}
