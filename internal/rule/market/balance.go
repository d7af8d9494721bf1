// Package market holds the rules that look at the exchange account and act on
// it: balance snapshots, buy/sell/stop-loss readiness and order execution,
// wrapped by the test and production mode rules.
package market

import (
	"context"

	"github.com/solbo-lab/solbo/internal/exchange"
	"github.com/solbo-lab/solbo/internal/types"
)

// AccountBalancesRule snapshots the free base and quote balances for the
// bound symbol. Readiness rules size orders from this snapshot.
type AccountBalancesRule struct {
	Binding *exchange.Binding
}

func (r *AccountBalancesRule) Name() string {
	return "ACCOUNT BALANCES"
}

func (r *AccountBalancesRule) Execute(ctx context.Context, bot *types.Solbot) types.Outcome {
	if r.Binding.Exchange == nil {
		return types.Fail("no exchange bound for this cycle")
	}

	balances, err := r.Binding.Exchange.GetAccountBalances(ctx)
	if err != nil {
		return types.Failf("fetching account balances: %v", err)
	}

	bot.Market.AvailableAsset = types.AssetBalance{
		Base:  balances[bot.Market.Symbol.BaseAsset],
		Quote: balances[bot.Market.Symbol.QuoteAsset],
	}

	return types.Okf("balances %s %s / %s %s",
		bot.Market.AvailableAsset.Base, bot.Market.Symbol.BaseAsset,
		bot.Market.AvailableAsset.Quote, bot.Market.Symbol.QuoteAsset)
}
