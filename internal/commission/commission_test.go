package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/solbo-lab/solbo/internal/types"
)

type CommissionTestSuite struct {
	suite.Suite
}

func TestCommissionSuite(t *testing.T) {
	suite.Run(t, new(CommissionTestSuite))
}

func (suite *CommissionTestSuite) TestZeroFee() {
	fee := NewZeroFee()
	suite.NotNil(fee)

	tests := []struct {
		name     string
		notional string
	}{
		{"zero notional", "0"},
		{"small notional", "10"},
		{"large notional", "100000"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			result := fee.Calculate(decimal.RequireFromString(tc.notional))
			suite.True(result.IsZero())
		})
	}
}

func (suite *CommissionTestSuite) TestTakerFee() {
	fee := NewTakerFee()
	suite.NotNil(fee)

	tests := []struct {
		name     string
		notional string
		expected string
	}{
		{"zero notional", "0", "0"},
		{"round notional", "1000", "1"},
		{"fractional notional", "150.50", "0.1505"},
		{"negative notional", "-100", "0"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			result := fee.Calculate(decimal.RequireFromString(tc.notional))
			suite.True(result.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, result)
		})
	}
}

func (suite *CommissionTestSuite) TestGetFeeHandler() {
	tests := []struct {
		name     string
		kind     types.CommissionKind
		notional string
		expected string
	}{
		{"taker", types.CommissionKindTaker, "1000", "1"},
		{"zero", types.CommissionKindZero, "1000", "0"},
		{"unknown kind defaults to zero", types.CommissionKind("maker"), "1000", "0"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			handler := GetFeeHandler(tc.kind)
			suite.NotNil(handler)
			result := handler.Calculate(decimal.RequireFromString(tc.notional))
			suite.True(result.Equal(decimal.RequireFromString(tc.expected)))
		})
	}
}
