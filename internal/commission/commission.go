// Package commission resolves the fee handler for a configured commission kind.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/solbo-lab/solbo/internal/types"
)

// Fee calculates the commission withheld from a trade.
type Fee interface {
	// Calculate returns the fee charged on the given notional amount.
	Calculate(notional decimal.Decimal) decimal.Decimal
}

// GetFeeHandler returns the fee handler for the given commission kind.
// Unrecognized kinds fall back to zero commission.
func GetFeeHandler(kind types.CommissionKind) Fee {
	switch kind {
	case types.CommissionKindTaker:
		return NewTakerFee()
	case types.CommissionKindZero:
		return NewZeroFee()
	default:
		return NewZeroFee()
	}
}
