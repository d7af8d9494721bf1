// Package job assembles and runs one complete trading cycle per tick.
package job

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/commission"
	"github.com/solbo-lab/solbo/internal/config"
	"github.com/solbo-lab/solbo/internal/exchange"
	"github.com/solbo-lab/solbo/internal/logger"
	"github.com/solbo-lab/solbo/internal/notification"
	"github.com/solbo-lab/solbo/internal/rule"
	"github.com/solbo-lab/solbo/internal/rule/market"
	"github.com/solbo-lab/solbo/internal/rule/sequence"
	"github.com/solbo-lab/solbo/internal/rule/validation"
	"github.com/solbo-lab/solbo/internal/storage"
	"github.com/solbo-lab/solbo/internal/types"
)

// BuyDeepSellHigh runs the buy-deep-sell-high strategy for one scheduled
// instance. Every tick reads the persisted document, runs the rule chain over
// a fresh cycle state, and writes the document back no matter how far the
// chain got.
type BuyDeepSellHigh struct {
	instance  config.InstanceConfig
	store     config.Store
	history   storage.PriceHistory
	exchanges []exchange.Exchange
	notifier  notification.Notifier
	logger    *logger.Logger
}

// NewBuyDeepSellHigh wires a job for one instance. The exchanges slice is the
// switch rule's preference order.
func NewBuyDeepSellHigh(
	instance config.InstanceConfig,
	store config.Store,
	history storage.PriceHistory,
	exchanges []exchange.Exchange,
	notifier notification.Notifier,
	log *logger.Logger,
) *BuyDeepSellHigh {
	return &BuyDeepSellHigh{
		instance:  instance,
		store:     store,
		history:   history,
		exchanges: exchanges,
		notifier:  notifier,
		logger:    log.Named(instance.Name),
	}
}

// Name returns the instance name the job runs for.
func (j *BuyDeepSellHigh) Name() string {
	return j.instance.Name
}

// Execute runs one cycle. A panic anywhere in the chain is contained here so
// a single bad cycle cannot take the scheduler down.
func (j *BuyDeepSellHigh) Execute(ctx context.Context, previousFireTime optional.Option[time.Time]) {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("Cycle aborted by panic", zap.Any("panic", r))
		}
	}()

	doc, err := j.store.Read(j.instance.Name)
	if err != nil {
		j.logger.Error("Failed to read strategy document", zap.Error(err))
		return
	}

	bot := types.NewSolbot(&doc.Strategy, &doc.Actions)
	binding := &exchange.Binding{}

	outcome := rule.NewChain(j.logger, j.rules(binding, previousFireTime, doc.Strategy.CommissionKind)...).Run(ctx, bot)
	if !outcome.Success {
		j.logger.Warn("Cycle stopped early", zap.String("message", outcome.Message))
	}

	doc.Strategy = *bot.Strategy
	doc.Actions = *bot.Actions
	if err := j.store.Write(j.instance.Name, doc); err != nil {
		j.logger.Error("Failed to persist strategy document", zap.Error(err))
	}
}

// rules builds the cycle's ordered chain: the validation battery, then the
// derivation sequence, then the mode branch picked from the instance
// credentials.
func (j *BuyDeepSellHigh) rules(
	binding *exchange.Binding,
	previousFireTime optional.Option[time.Time],
	commissionKind types.CommissionKind,
) []rule.Rule {
	rules := []rule.Rule{
		&sequence.StartupNotificationRule{
			Instance:         j.instance.Name,
			Notifier:         j.notifier,
			PreviousFireTime: previousFireTime,
		},
		&validation.StrategyKindRule{},
		&validation.ExchangeTypeRule{Credentials: j.instance.Exchange},
		&validation.AverageMethodRule{},
		&validation.AverageWindowRule{},
		&validation.BuyStepRule{},
		&validation.SellStepRule{},
		&validation.StopLossStepRule{},
		&validation.StopLossPauseCyclesRule{},
		&validation.FundPercentageRule{},
		&validation.CommissionKindRule{},
		&validation.BoughtStateRule{},
		&validation.StopLossCycleRule{},
		&sequence.ClearOnStartupRule{Store: j.history, PreviousFireTime: previousFireTime},
		&sequence.SwitchExchangeRule{Exchanges: j.exchanges, Binding: binding},
		&sequence.SavePriceRule{Store: j.history, Binding: binding},
		&sequence.AverageRule{Store: j.history},
		&sequence.ModeRule{Credentials: j.instance.Exchange},
		&sequence.StopLossPauseRule{},
	}

	if j.instance.Exchange.IsInTestMode() {
		return append(rules, &market.TestModeRule{
			Logger:   j.logger,
			Binding:  binding,
			Notifier: j.notifier,
		})
	}

	return append(rules,
		&validation.APICredentialsRule{Credentials: j.instance.Exchange},
		&market.ProductionModeRule{
			Logger:   j.logger,
			Binding:  binding,
			Notifier: j.notifier,
			Fee:      commission.GetFeeHandler(commissionKind),
		},
	)
}
