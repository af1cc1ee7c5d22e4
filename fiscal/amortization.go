package fiscal

import "github.com/shopspring/decimal"

// Amortize returns the straight-line annual amortization of an amount
// over a duration in years. Each year's amortization is recomputed from
// the original amount; no accumulated schedule is tracked here.
//
// A non-positive duration yields zero rather than a division error, so
// an unset amortizable amount with an unset duration degrades quietly.
func Amortize(amount, years decimal.Decimal) decimal.Decimal {
	if !years.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(years)
}
