package market

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/commission"
	"github.com/solbo-lab/solbo/internal/exchange"
	"github.com/solbo-lab/solbo/internal/logger"
	"github.com/solbo-lab/solbo/internal/notification"
	"github.com/solbo-lab/solbo/internal/rule"
	"github.com/solbo-lab/solbo/internal/types"
)

// orderKindPriority is the order in which production cycles work the intents:
// liquidation first, then profit taking, then accumulation.
var orderKindPriority = []types.OrderKind{
	types.OrderKindStopLoss,
	types.OrderKindSell,
	types.OrderKindBuy,
}

func readinessRuleFor(kind types.OrderKind) rule.Rule {
	switch kind {
	case types.OrderKindSell:
		return &SellReadinessRule{}
	case types.OrderKindStopLoss:
		return &StopLossReadinessRule{}
	default:
		return &BuyReadinessRule{}
	}
}

// TestModeRule dry-runs the cycle: it snapshots balances when the bound
// exchange exposes them, computes every intent, and reports what a production
// cycle would have done. No orders are placed and the action state never
// changes.
type TestModeRule struct {
	Logger   *logger.Logger
	Binding  *exchange.Binding
	Notifier notification.Notifier
}

func (r *TestModeRule) Name() string {
	return "TEST MODE"
}

func (r *TestModeRule) Execute(ctx context.Context, bot *types.Solbot) types.Outcome {
	// Balances are best effort here: without credentials the exchange
	// rejects the call and every fund stays zero.
	if outcome := (&AccountBalancesRule{Binding: r.Binding}).Execute(ctx, bot); !outcome.Success {
		r.Logger.Debug("Test mode without balances", zap.String("message", outcome.Message))
	}

	for _, kind := range orderKindPriority {
		outcome := readinessRuleFor(kind).Execute(ctx, bot)
		r.Logger.Info("Test mode intent",
			zap.String("kind", string(kind)),
			zap.String("message", outcome.Message),
		)

		if intent := bot.Market.Intent(kind); intent.IsReady {
			r.Notifier.Send(
				fmt.Sprintf("%s %s %s", types.ModeTest, kind, bot.Market.Symbol.Name),
				fmt.Sprintf("price %s | average %s | change %s%% | no order placed",
					bot.Market.Price, bot.Market.Average.Value, intent.Change),
			)
		}
	}

	return types.Ok("test cycle completed, no orders placed")
}

// ProductionModeRule trades for real. It snapshots the account once, then
// works each order kind through its own readiness-and-execute chain in
// priority order. A failure inside one kind's chain abandons that kind for
// the cycle but the remaining kinds still run.
type ProductionModeRule struct {
	Logger   *logger.Logger
	Binding  *exchange.Binding
	Notifier notification.Notifier
	Fee      commission.Fee
}

func (r *ProductionModeRule) Name() string {
	return "PRODUCTION MODE"
}

func (r *ProductionModeRule) Execute(ctx context.Context, bot *types.Solbot) types.Outcome {
	if outcome := (&AccountBalancesRule{Binding: r.Binding}).Execute(ctx, bot); !outcome.Success {
		return outcome
	}

	for _, kind := range orderKindPriority {
		chain := rule.NewChain(r.Logger,
			readinessRuleFor(kind),
			&ExecuteOrderRule{
				Kind:     kind,
				Binding:  r.Binding,
				Notifier: r.Notifier,
				Fee:      r.Fee,
			},
		)

		outcome := chain.Run(ctx, bot)
		if !outcome.Success {
			r.Logger.Warn("Order kind abandoned for this cycle",
				zap.String("kind", string(kind)),
				zap.String("message", outcome.Message),
			)
		}
	}

	return types.Ok("production cycle completed")
}
