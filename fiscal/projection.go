/*
projection.go - Multi-year carry-forward chaining

PURPOSE:
  Within one simulation, fiscal year N's computation requires year
  N-1's carry-forward as input, so years form a linear recurrence.
  Project runs that recurrence as an explicit fold: no recursion, no
  shared accumulator, each year's result threaded into the next call.

  Independent simulations have no data dependency on each other and
  may be projected concurrently without coordination.
*/
package fiscal

import "github.com/shopspring/decimal"

// Project computes fiscal years 1..years in order, threading each
// year's CarryForward into the next year's computation. carryForwardIn
// seeds year 1 (zero for a fresh acquisition).
func Project(c YearComputer, sim Simulation, years int, carryForwardIn decimal.Decimal) ([]YearResult, error) {
	if years < 1 {
		return nil, &InvalidInputError{Field: "years", Reason: "must be >= 1"}
	}

	results := make([]YearResult, 0, years)
	carry := carryForwardIn
	for year := 1; year <= years; year++ {
		result, err := c.ComputeYear(sim, carry, year)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
		carry = result.CarryForward
	}
	return results, nil
}
