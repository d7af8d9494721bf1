// Package rule defines the rule contract and the fail-fast chain executor at
// the heart of the trading cycle.
package rule

import (
	"context"

	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/logger"
	"github.com/solbo-lab/solbo/internal/types"
)

// Rule is one unit of work in a cycle: given the shared trading state it
// produces an Outcome and may mutate the state. Rule instances are built fresh
// for every cycle and never reused.
type Rule interface {
	// Name identifies the rule in logs.
	Name() string
	// Execute runs the rule against the cycle state.
	Execute(ctx context.Context, bot *types.Solbot) types.Outcome
}

// Func adapts a plain function to the Rule interface.
type Func struct {
	RuleName string
	Fn       func(ctx context.Context, bot *types.Solbot) types.Outcome
}

// Name implements Rule.
func (f Func) Name() string {
	return f.RuleName
}

// Execute implements Rule.
func (f Func) Execute(ctx context.Context, bot *types.Solbot) types.Outcome {
	return f.Fn(ctx, bot)
}

// Chain executes rules strictly in the order they were composed. Order is
// load-bearing: validations precede derivations precede mode and order rules,
// so the rules are held in a slice, never a set.
type Chain struct {
	logger *logger.Logger
	rules  []Rule
}

// NewChain builds a chain over the given ordered rules.
func NewChain(log *logger.Logger, rules ...Rule) *Chain {
	return &Chain{
		logger: log,
		rules:  rules,
	}
}

// Run executes the chain fail-fast: the first failed outcome stops the run and
// the remaining rules do not execute this cycle. Mutations made by rules that
// did run are kept; the caller persists them regardless of where the chain
// stopped.
func (c *Chain) Run(ctx context.Context, bot *types.Solbot) types.Outcome {
	for _, r := range c.rules {
		outcome := r.Execute(ctx, bot)
		if !outcome.Success {
			c.logger.Error("Rule failed",
				zap.String("rule", r.Name()),
				zap.String("message", outcome.Message),
			)

			return outcome
		}

		c.logger.Debug("Rule executed",
			zap.String("rule", r.Name()),
			zap.String("message", outcome.Message),
		)
	}

	return types.Ok("all rules executed")
}
