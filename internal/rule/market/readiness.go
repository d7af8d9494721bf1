package market

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solbo-lab/solbo/internal/average"
	"github.com/solbo-lab/solbo/internal/types"
)

var hundred = decimal.NewFromInt(100)

// changePercent is the signed distance of the current price from the rolling
// average, in percent. An average without samples yields no change and blocks
// readiness for the cycle.
func changePercent(price decimal.Decimal, avg types.PriceAverage) (decimal.Decimal, bool) {
	if avg.Count == 0 || !avg.Value.IsPositive() {
		return decimal.Zero, false
	}

	return price.Sub(avg.Value).Div(avg.Value).Mul(hundred).Round(average.DefaultPrecision), true
}

// BuyReadinessRule decides whether this cycle buys: the price has to sit at
// least BuyStep percent below the rolling average, the committed quote fund
// has to clear the exchange minimum notional, and no stop-loss pause may be
// in progress. Readiness is reported, never failed.
type BuyReadinessRule struct{}

func (r *BuyReadinessRule) Name() string {
	return "BUY READINESS"
}

func (r *BuyReadinessRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	m := bot.Market
	change, hasAverage := changePercent(m.Price, m.Average)
	fund := m.AvailableAsset.Quote.Mul(decimal.NewFromFloat(bot.Strategy.FundPercentage))

	m.Buy = types.OrderIntent{
		AvailableFund: fund,
		Change:        change,
		PriceReached:  hasAverage && change.LessThanOrEqual(decimal.NewFromFloat(bot.Strategy.BuyStep).Neg()),
	}
	m.Buy.IsReady = m.Buy.PriceReached &&
		fund.IsPositive() &&
		fund.GreaterThan(m.Symbol.MinNotional) &&
		!bot.Actions.StopLossReached

	if m.Buy.IsReady {
		return types.Okf("ready to buy, price %s is %s%% off the average %s", m.Price, change, m.Average.Value)
	}

	return types.Okf("not buying, change %s%% with fund %s", change, fund)
}

// SellReadinessRule decides whether this cycle sells the held position: a
// position has to exist, the price has to sit at least SellStep percent above
// the rolling average, and the position's notional value has to clear the
// exchange minimum.
type SellReadinessRule struct{}

func (r *SellReadinessRule) Name() string {
	return "SELL READINESS"
}

func (r *SellReadinessRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	m := bot.Market
	change, hasAverage := changePercent(m.Price, m.Average)
	fund := m.AvailableAsset.Base

	m.Sell = types.OrderIntent{
		AvailableFund: fund,
		Change:        change,
		PriceReached:  hasAverage && change.GreaterThanOrEqual(decimal.NewFromFloat(bot.Strategy.SellStep)),
	}
	m.Sell.IsReady = m.Sell.PriceReached &&
		bot.Actions.BoughtPrice.IsPositive() &&
		fund.IsPositive() &&
		fund.Mul(m.Price).GreaterThan(m.Symbol.MinNotional)

	if m.Sell.IsReady {
		return types.Okf("ready to sell, price %s is %s%% above the average %s", m.Price, change, m.Average.Value)
	}

	return types.Okf("not selling, change %s%% with position %s", change, fund)
}

// StopLossReadinessRule decides whether this cycle liquidates the held
// position: stop-loss has to be enabled, a position has to exist, and the
// price has to sit at least StopLossStep percent below the rolling average.
type StopLossReadinessRule struct{}

func (r *StopLossReadinessRule) Name() string {
	return "STOP LOSS READINESS"
}

func (r *StopLossReadinessRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	m := bot.Market
	change, hasAverage := changePercent(m.Price, m.Average)
	fund := m.AvailableAsset.Base

	m.StopLoss = types.OrderIntent{
		AvailableFund: fund,
		Change:        change,
		PriceReached: bot.Strategy.IsStopLossOn() &&
			hasAverage &&
			change.LessThanOrEqual(decimal.NewFromFloat(bot.Strategy.StopLossStep).Neg()),
	}
	m.StopLoss.IsReady = m.StopLoss.PriceReached &&
		bot.Actions.BoughtPrice.IsPositive() &&
		fund.IsPositive() &&
		fund.Mul(m.Price).GreaterThan(m.Symbol.MinNotional)

	if m.StopLoss.IsReady {
		return types.Okf("stop loss triggered, price %s is %s%% below the average %s", m.Price, change, m.Average.Value)
	}

	return types.Okf("no stop loss, change %s%%", change)
}
