package commission

import "github.com/shopspring/decimal"

// takerRate is the standard spot taker fee (0.1%).
var takerRate = decimal.RequireFromString("0.001")

type TakerFee struct {
}

func NewTakerFee() Fee {
	return &TakerFee{}
}

// Calculate implements Fee.
func (f *TakerFee) Calculate(notional decimal.Decimal) decimal.Decimal {
	if notional.IsNegative() {
		return decimal.Zero
	}

	return notional.Mul(takerRate)
}
