// Package validation holds the pre-flight rules that verify an instance
// configuration before any market work happens in a cycle.
package validation

import (
	"context"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/solbo-lab/solbo/internal/types"
)

// StrategyKindRule verifies the configured strategy is one this binary knows
// how to run.
type StrategyKindRule struct{}

func (r *StrategyKindRule) Name() string {
	return "STRATEGY KIND"
}

func (r *StrategyKindRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if !slices.Contains(types.AllStrategyKinds, bot.Strategy.Kind) {
		return types.Failf("strategy %q is not supported", bot.Strategy.Kind)
	}

	return types.Okf("strategy %s verified", bot.Strategy.Kind)
}

// ExchangeTypeRule verifies the instance points at an exchange this binary
// can construct.
type ExchangeTypeRule struct {
	Credentials types.ExchangeCredentials
}

func (r *ExchangeTypeRule) Name() string {
	return "EXCHANGE TYPE"
}

func (r *ExchangeTypeRule) Execute(_ context.Context, _ *types.Solbot) types.Outcome {
	if !slices.Contains(types.AllExchangeTypes, r.Credentials.Type) {
		return types.Failf("exchange type %q is not supported", r.Credentials.Type)
	}

	return types.Okf("exchange type %s verified", r.Credentials.Type)
}

// AverageMethodRule verifies the configured averaging method.
type AverageMethodRule struct{}

func (r *AverageMethodRule) Name() string {
	return "AVERAGE METHOD"
}

func (r *AverageMethodRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if !slices.Contains(types.AllAverageMethods, bot.Strategy.AverageMethod) {
		return types.Failf("average method %q is not supported", bot.Strategy.AverageMethod)
	}

	return types.Okf("average method %s verified", bot.Strategy.AverageMethod)
}

// AverageWindowRule verifies the averaging window is a positive sample count.
type AverageWindowRule struct{}

func (r *AverageWindowRule) Name() string {
	return "AVERAGE WINDOW"
}

func (r *AverageWindowRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if err := validator.New().Var(bot.Strategy.AverageWindow, "gt=0"); err != nil {
		return types.Failf("average window must be greater than zero, got %d", bot.Strategy.AverageWindow)
	}

	return types.Okf("average window %d verified", bot.Strategy.AverageWindow)
}

// BuyStepRule verifies the buy dip threshold is a usable percentage.
type BuyStepRule struct{}

func (r *BuyStepRule) Name() string {
	return "BUY STEP"
}

func (r *BuyStepRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if err := validator.New().Var(bot.Strategy.BuyStep, "gt=0,lte=100"); err != nil {
		return types.Failf("buy step must be within (0, 100], got %v", bot.Strategy.BuyStep)
	}

	return types.Okf("buy step %v%% verified", bot.Strategy.BuyStep)
}

// SellStepRule verifies the sell rise threshold is a usable percentage.
type SellStepRule struct{}

func (r *SellStepRule) Name() string {
	return "SELL STEP"
}

func (r *SellStepRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if err := validator.New().Var(bot.Strategy.SellStep, "gt=0,lte=100"); err != nil {
		return types.Failf("sell step must be within (0, 100], got %v", bot.Strategy.SellStep)
	}

	return types.Okf("sell step %v%% verified", bot.Strategy.SellStep)
}

// StopLossStepRule verifies the stop-loss threshold. Zero disables stop-loss
// entirely and is valid.
type StopLossStepRule struct{}

func (r *StopLossStepRule) Name() string {
	return "STOP LOSS STEP"
}

func (r *StopLossStepRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if err := validator.New().Var(bot.Strategy.StopLossStep, "gte=0,lte=100"); err != nil {
		return types.Failf("stop loss step must be within [0, 100], got %v", bot.Strategy.StopLossStep)
	}

	if !bot.Strategy.IsStopLossOn() {
		return types.Ok("stop loss is disabled")
	}

	return types.Okf("stop loss step %v%% verified", bot.Strategy.StopLossStep)
}

// StopLossPauseCyclesRule verifies the post-stop-loss buying pause length.
type StopLossPauseCyclesRule struct{}

func (r *StopLossPauseCyclesRule) Name() string {
	return "STOP LOSS PAUSE CYCLES"
}

func (r *StopLossPauseCyclesRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if err := validator.New().Var(bot.Strategy.StopLossPauseCycles, "gte=0"); err != nil {
		return types.Failf("stop loss pause cycles must not be negative, got %d", bot.Strategy.StopLossPauseCycles)
	}

	return types.Okf("stop loss pause of %d cycles verified", bot.Strategy.StopLossPauseCycles)
}

// FundPercentageRule verifies the fraction of quote balance each buy commits.
type FundPercentageRule struct{}

func (r *FundPercentageRule) Name() string {
	return "FUND PERCENTAGE"
}

func (r *FundPercentageRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if err := validator.New().Var(bot.Strategy.FundPercentage, "gt=0,lte=1"); err != nil {
		return types.Failf("fund percentage must be within (0, 1], got %v", bot.Strategy.FundPercentage)
	}

	return types.Okf("fund percentage %v verified", bot.Strategy.FundPercentage)
}

// CommissionKindRule verifies the configured commission model.
type CommissionKindRule struct{}

func (r *CommissionKindRule) Name() string {
	return "COMMISSION KIND"
}

func (r *CommissionKindRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if !slices.Contains(types.AllCommissionKinds, bot.Strategy.CommissionKind) {
		return types.Failf("commission kind %q is not supported", bot.Strategy.CommissionKind)
	}

	return types.Okf("commission kind %s verified", bot.Strategy.CommissionKind)
}

// BoughtStateRule verifies the persisted position state is internally
// consistent before the cycle trusts it.
type BoughtStateRule struct{}

func (r *BoughtStateRule) Name() string {
	return "BOUGHT STATE"
}

func (r *BoughtStateRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if bot.Actions.BoughtPrice.IsNegative() {
		return types.Failf("bought price must not be negative, got %s", bot.Actions.BoughtPrice)
	}

	// A triggered stop-loss means the position was liquidated, so a held
	// position alongside the flag is a corrupt state file.
	if bot.Actions.StopLossReached && bot.Actions.BoughtPrice.IsPositive() {
		return types.Fail("stop loss is marked reached while a bought price is still held")
	}

	return types.Ok("bought state verified")
}

// StopLossCycleRule verifies the pause counter matches the stop-loss flag.
type StopLossCycleRule struct{}

func (r *StopLossCycleRule) Name() string {
	return "STOP LOSS CYCLE"
}

func (r *StopLossCycleRule) Execute(_ context.Context, bot *types.Solbot) types.Outcome {
	if bot.Actions.CurrentStopLossPauseCycle < 0 {
		return types.Failf("stop loss pause cycle must not be negative, got %d", bot.Actions.CurrentStopLossPauseCycle)
	}

	if !bot.Actions.StopLossReached && bot.Actions.CurrentStopLossPauseCycle > 0 {
		return types.Fail("stop loss pause cycle is counting while stop loss is not reached")
	}

	return types.Ok("stop loss cycle verified")
}

// APICredentialsRule verifies the exchange credentials are present and
// well-formed. Only production cycles run it.
type APICredentialsRule struct {
	Credentials types.ExchangeCredentials
}

func (r *APICredentialsRule) Name() string {
	return "API CREDENTIALS"
}

func (r *APICredentialsRule) Execute(_ context.Context, _ *types.Solbot) types.Outcome {
	v := validator.New()
	if err := v.Var(r.Credentials.APIKey, "required,excludesall= \t\n"); err != nil {
		return types.Fail("api key is missing or malformed")
	}

	if err := v.Var(r.Credentials.APISecret, "required,excludesall= \t\n"); err != nil {
		return types.Fail("api secret is missing or malformed")
	}

	return types.Ok("api credentials verified")
}
