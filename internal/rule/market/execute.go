package market

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solbo-lab/solbo/internal/commission"
	"github.com/solbo-lab/solbo/internal/exchange"
	"github.com/solbo-lab/solbo/internal/notification"
	"github.com/solbo-lab/solbo/internal/types"
)

// ExecuteOrderRule places the market order for one order kind when its intent
// is ready, confirms the fill with the exchange, and only then mutates the
// persisted action state. A placed-but-unconfirmed order fails the rule and
// leaves the state untouched.
type ExecuteOrderRule struct {
	Kind     types.OrderKind
	Binding  *exchange.Binding
	Notifier notification.Notifier
	Fee      commission.Fee
}

func (r *ExecuteOrderRule) Name() string {
	return fmt.Sprintf("EXECUTE %s", r.Kind)
}

func (r *ExecuteOrderRule) Execute(ctx context.Context, bot *types.Solbot) types.Outcome {
	intent := bot.Market.Intent(r.Kind)
	if intent == nil {
		return types.Failf("unknown order kind %s", r.Kind)
	}

	if !intent.IsReady {
		return types.Okf("%s skipped, intent not ready", r.Kind)
	}

	symbol := bot.Market.Symbol.Name
	side, quantity := r.sizeOrder(bot, intent)
	if !quantity.IsPositive() {
		return types.Failf("%s quantity %s is not positive", r.Kind, quantity)
	}

	result, err := r.Binding.Exchange.PlaceMarketOrder(ctx, symbol, side, quantity)
	if err != nil {
		return types.Failf("placing %s order: %v", r.Kind, err)
	}

	order, err := r.Binding.Exchange.GetOrder(ctx, symbol, result.OrderID)
	if err != nil {
		return types.Failf("order %s placed but not confirmed: %v", result.OrderID, err)
	}

	if !order.Filled {
		return types.Failf("order %s placed but not filled", result.OrderID)
	}

	r.applyFill(bot, order)
	r.notify(bot, order)

	return types.Okf("%s order %s filled at %s for %s", r.Kind, order.OrderID, order.Price, order.Quantity)
}

// sizeOrder converts the intent's available fund into an order side and
// quantity. Buys commit the quote fund net of commission at the current
// price; sells and stop-losses liquidate the whole base position.
func (r *ExecuteOrderRule) sizeOrder(bot *types.Solbot, intent *types.OrderIntent) (types.OrderSide, decimal.Decimal) {
	if r.Kind == types.OrderKindBuy {
		net := intent.AvailableFund.Sub(r.Fee.Calculate(intent.AvailableFund))
		return types.OrderSideBuy, net.Div(bot.Market.Price).Truncate(exchange.BinanceDecimalPrecision)
	}

	return types.OrderSideSell, intent.AvailableFund.Truncate(exchange.BinanceDecimalPrecision)
}

// applyFill records the confirmed fill on the action state.
func (r *ExecuteOrderRule) applyFill(bot *types.Solbot, order types.OrderDetails) {
	switch r.Kind {
	case types.OrderKindBuy:
		bot.Actions.BoughtPrice = order.Price
	case types.OrderKindSell:
		bot.Actions.BoughtPrice = decimal.Zero
	case types.OrderKindStopLoss:
		bot.Actions.BoughtPrice = decimal.Zero
		bot.Actions.StopLossReached = true
		bot.Actions.CurrentStopLossPauseCycle = 0
	}
}

func (r *ExecuteOrderRule) notify(bot *types.Solbot, order types.OrderDetails) {
	intent := bot.Market.Intent(r.Kind)
	title := fmt.Sprintf("%s %s %s", bot.Market.Mode, r.Kind, bot.Market.Symbol.Name)
	body := fmt.Sprintf("price %s | average %s | change %s%% | quantity %s",
		order.Price, bot.Market.Average.Value, intent.Change, order.Quantity)

	r.Notifier.Send(title, body)
}
