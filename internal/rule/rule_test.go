package rule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/solbo-lab/solbo/internal/logger"
	"github.com/solbo-lab/solbo/internal/types"
)

type ChainTestSuite struct {
	suite.Suite
	logger *logger.Logger
}

func TestChainSuite(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

func (s *ChainTestSuite) SetupTest() {
	s.logger = logger.NewNopLogger()
}

// markerRule records that it ran and optionally fails.
type markerRule struct {
	name     string
	fail     bool
	executed *[]string
}

func (m *markerRule) Name() string {
	return m.name
}

func (m *markerRule) Execute(_ context.Context, _ *types.Solbot) types.Outcome {
	*m.executed = append(*m.executed, m.name)
	if m.fail {
		return types.Failf("%s refused", m.name)
	}
	return types.Okf("%s passed", m.name)
}

func (s *ChainTestSuite) TestRunAllSucceed() {
	var executed []string
	chain := NewChain(s.logger,
		&markerRule{name: "first", executed: &executed},
		&markerRule{name: "second", executed: &executed},
		&markerRule{name: "third", executed: &executed},
	)

	outcome := chain.Run(context.Background(), types.NewSolbot(&types.StrategyConfig{}, nil))

	s.True(outcome.Success)
	s.Equal([]string{"first", "second", "third"}, executed)
}

func (s *ChainTestSuite) TestRunStopsAtFirstFailure() {
	var executed []string
	chain := NewChain(s.logger,
		&markerRule{name: "first", executed: &executed},
		&markerRule{name: "second", executed: &executed},
		&markerRule{name: "third", fail: true, executed: &executed},
		&markerRule{name: "fourth", executed: &executed},
		&markerRule{name: "fifth", executed: &executed},
		&markerRule{name: "sixth", executed: &executed},
	)

	outcome := chain.Run(context.Background(), types.NewSolbot(&types.StrategyConfig{}, nil))

	s.False(outcome.Success)
	s.Equal("third refused", outcome.Message)
	s.Equal([]string{"first", "second", "third"}, executed)
}

func (s *ChainTestSuite) TestRunKeepsMutationsBeforeFailure() {
	bot := types.NewSolbot(&types.StrategyConfig{}, nil)
	chain := NewChain(s.logger,
		Func{RuleName: "mutate", Fn: func(_ context.Context, b *types.Solbot) types.Outcome {
			b.Actions.CurrentStopLossPauseCycle = 2
			return types.Ok("mutated")
		}},
		Func{RuleName: "fail", Fn: func(_ context.Context, _ *types.Solbot) types.Outcome {
			return types.Fail("stop here")
		}},
		Func{RuleName: "never", Fn: func(_ context.Context, b *types.Solbot) types.Outcome {
			b.Actions.CurrentStopLossPauseCycle = 99
			return types.Ok("unreachable")
		}},
	)

	outcome := chain.Run(context.Background(), bot)

	s.False(outcome.Success)
	s.Equal(2, bot.Actions.CurrentStopLossPauseCycle)
}

func (s *ChainTestSuite) TestEmptyChainSucceeds() {
	chain := NewChain(s.logger)

	outcome := chain.Run(context.Background(), types.NewSolbot(&types.StrategyConfig{}, nil))

	s.True(outcome.Success)
}
