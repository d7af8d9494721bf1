// Package average computes the rolling price average used by the
// buy-deep-sell-high decision rules.
package average

import (
	"github.com/shopspring/decimal"

	"github.com/solbo-lab/solbo/internal/types"
	"github.com/solbo-lab/solbo/pkg/errors"
)

// DefaultPrecision is the number of decimal places the computed average is
// rounded to.
const DefaultPrecision int32 = 4

// Compute returns the rolling average over the most recent entries of prices
// (ordered oldest to newest) together with the sample count actually used,
// which is min(len(prices), window). A zero count yields a zero average; the
// caller must treat it as "not ready" rather than a priced signal.
func Compute(prices []decimal.Decimal, window int, precision int32, method types.AverageMethod) (decimal.Decimal, int, error) {
	if window <= 0 {
		return decimal.Zero, 0, errors.Newf(errors.ErrCodeAverageFailed, "average window must be positive, got %d", window)
	}

	count := len(prices)
	if count > window {
		count = window
	}

	if count == 0 {
		return decimal.Zero, 0, nil
	}

	windowed := prices[len(prices)-count:]

	var value decimal.Decimal

	switch method {
	case types.AverageMethodSimple:
		value = simple(windowed)
	case types.AverageMethodExponential:
		value = exponential(windowed)
	default:
		return decimal.Zero, 0, errors.Newf(errors.ErrCodeAverageFailed, "unrecognized average method: %s", method)
	}

	return value.Round(precision), count, nil
}

func simple(prices []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, price := range prices {
		sum = sum.Add(price)
	}

	return sum.Div(decimal.NewFromInt(int64(len(prices))))
}

// exponential seeds with the oldest windowed price and applies the standard
// smoothing multiplier 2/(n+1) across the remaining entries.
func exponential(prices []decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(len(prices) + 1)))

	ema := prices[0]
	for _, price := range prices[1:] {
		ema = price.Sub(ema).Mul(multiplier).Add(ema)
	}

	return ema
}
