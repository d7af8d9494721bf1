package commission

import "github.com/shopspring/decimal"

type ZeroFee struct {
}

func NewZeroFee() Fee {
	return &ZeroFee{}
}

// Calculate implements Fee.
func (f *ZeroFee) Calculate(notional decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}
