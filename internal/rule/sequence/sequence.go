// Package sequence holds the state-derivation rules that run between the
// validation battery and the mode rules: they pull market facts into the
// cycle snapshot and keep the stop-loss pause ticking.
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/moznion/go-optional"

	"github.com/solbo-lab/solbo/internal/average"
	"github.com/solbo-lab/solbo/internal/exchange"
	"github.com/solbo-lab/solbo/internal/notification"
	"github.com/solbo-lab/solbo/internal/storage"
	"github.com/solbo-lab/solbo/internal/types"
)

// StartupNotificationRule announces the instance on the first cycle of a
// process so the operator knows the schedule is live. Later cycles are silent.
type StartupNotificationRule struct {
	Instance         string
	Notifier         notification.Notifier
	PreviousFireTime optional.Option[time.Time]
}

func (r *StartupNotificationRule) Name() string {
	return "STARTUP NOTIFICATION"
}

func (r *StartupNotificationRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if r.PreviousFireTime.IsSome() {
		return types.Ok("already announced")
	}

	r.Notifier.Send(
		fmt.Sprintf("%s started", r.Instance),
		fmt.Sprintf("trading %s every cycle with %s averaging over %d samples",
			bot.Strategy.Symbol, bot.Strategy.AverageMethod, bot.Strategy.AverageWindow),
	)

	return types.Okf("startup of %s announced", r.Instance)
}

// ClearOnStartupRule empties the persisted price history on the first cycle of
// a process when the strategy asks for a clean slate. Subsequent cycles carry
// a previous fire time and are untouched.
type ClearOnStartupRule struct {
	Store            storage.PriceHistory
	PreviousFireTime optional.Option[time.Time]
}

func (r *ClearOnStartupRule) Name() string {
	return "CLEAR ON STARTUP"
}

func (r *ClearOnStartupRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if !bot.Strategy.ClearOnStartup {
		return types.Ok("price history kept across restarts")
	}

	if r.PreviousFireTime.IsSome() {
		return types.Ok("not the first cycle, price history kept")
	}

	if err := r.Store.Clear(); err != nil {
		return types.Failf("clearing price history: %v", err)
	}

	return types.Ok("price history cleared on startup")
}

// SwitchExchangeRule walks the configured exchanges in preference order and
// binds the first one that lists the strategy symbol.
type SwitchExchangeRule struct {
	Exchanges []exchange.Exchange
	Binding   *exchange.Binding
}

func (r *SwitchExchangeRule) Name() string {
	return "SWITCH EXCHANGE"
}

func (r *SwitchExchangeRule) Execute(ctx context.Context, bot *types.Solbot) types.Outcome {
	for _, ex := range r.Exchanges {
		info, err := ex.GetSymbolInfo(ctx, bot.Strategy.Symbol)
		if err != nil {
			continue
		}

		r.Binding.Exchange = ex
		bot.Market.Symbol = info

		return types.Okf("exchange %s selected for %s", ex.Name(), info.Name)
	}

	return types.Failf("no configured exchange lists symbol %s", bot.Strategy.Symbol)
}

// SavePriceRule fetches the current ticker price, appends it to the price
// history and records it on the cycle snapshot.
type SavePriceRule struct {
	Store   storage.PriceHistory
	Binding *exchange.Binding
}

func (r *SavePriceRule) Name() string {
	return "SAVE PRICE"
}

func (r *SavePriceRule) Execute(ctx context.Context, bot *types.Solbot) types.Outcome {
	if r.Binding.Exchange == nil {
		return types.Fail("no exchange bound for this cycle")
	}

	price, err := r.Binding.Exchange.GetTicker(ctx, bot.Strategy.Symbol)
	if err != nil {
		return types.Failf("fetching ticker for %s: %v", bot.Strategy.Symbol, err)
	}

	if !price.IsPositive() {
		return types.Failf("ticker for %s returned non-positive price %s", bot.Strategy.Symbol, price)
	}

	if err := r.Store.Append(price); err != nil {
		return types.Failf("storing price: %v", err)
	}

	bot.Market.Price = price

	return types.Okf("price %s stored for %s", price, bot.Strategy.Symbol)
}

// AverageRule computes the rolling average over the stored price history.
type AverageRule struct {
	Store storage.PriceHistory
}

func (r *AverageRule) Name() string {
	return "CALCULATE AVERAGE"
}

func (r *AverageRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	prices, err := r.Store.GetAll()
	if err != nil {
		return types.Failf("reading price history: %v", err)
	}

	value, count, err := average.Compute(prices, bot.Strategy.AverageWindow, average.DefaultPrecision, bot.Strategy.AverageMethod)
	if err != nil {
		return types.Failf("computing %s average: %v", bot.Strategy.AverageMethod, err)
	}

	bot.Market.Average = types.PriceAverage{
		Value: value,
		Count: count,
	}

	return types.Okf("%s average %s over %d samples", bot.Strategy.AverageMethod, value, count)
}

// ModeRule derives whether this cycle trades for real from the exchange
// credentials.
type ModeRule struct {
	Credentials types.ExchangeCredentials
}

func (r *ModeRule) Name() string {
	return "MODE"
}

func (r *ModeRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if r.Credentials.IsInTestMode() {
		bot.Market.Mode = types.ModeTest
	} else {
		bot.Market.Mode = types.ModeProduction
	}

	return types.Okf("cycle runs in %s mode", bot.Market.Mode)
}

// StopLossPauseRule advances the buying pause that follows a triggered
// stop-loss. The flag stays set for exactly StopLossPauseCycles cycles after
// the fill; only once the counter has covered all of them do the flag and
// counter reset together, so the reset never lands on a cycle the pause still
// owes. A pause of 1 suppresses exactly one cycle.
type StopLossPauseRule struct{}

func (r *StopLossPauseRule) Name() string {
	return "STOP LOSS PAUSE"
}

func (r *StopLossPauseRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if !bot.Strategy.IsStopLossOn() || !bot.Actions.StopLossReached {
		return types.Ok("no stop loss pause in progress")
	}

	if bot.Actions.CurrentStopLossPauseCycle >= bot.Strategy.StopLossPauseCycles {
		bot.Actions.StopLossReached = false
		bot.Actions.CurrentStopLossPauseCycle = 0

		return types.Ok("stop loss pause finished, buying resumes")
	}

	bot.Actions.CurrentStopLossPauseCycle++

	return types.Okf("stop loss pause cycle %d of %d",
		bot.Actions.CurrentStopLossPauseCycle, bot.Strategy.StopLossPauseCycles)
}
