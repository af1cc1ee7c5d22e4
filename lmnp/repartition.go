package lmnp

import (
	"github.com/shopspring/decimal"

	"github.com/warp/fiscal-engine/fiscal"
)

// RepartitionDeficit floors the reported furnished-rental income at
// zero. No cap magnitude applies: a negative gross amount defers in
// full to the next fiscal year.
func RepartitionDeficit(gross decimal.Decimal) fiscal.YearResult {
	if gross.IsNegative() {
		return fiscal.YearResult{
			NetTaxable:   decimal.Zero,
			IsNegative:   true,
			CarryForward: gross.Abs(),
		}
	}
	return fiscal.YearResult{
		NetTaxable:   gross,
		IsNegative:   false,
		CarryForward: decimal.Zero,
	}
}
