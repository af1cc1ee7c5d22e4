/*
Package lmnp implements the furnished-rental (LMNP) regime family.

PURPOSE:
  Furnished rental amortizes the property purchase price over 33 years
  and initial works over 20 years on top of deductible expenses. Under
  the forfait regimen a flat 50% allowance applies to rent. Under the
  réel regimen the reported income is floored at zero: a deficit is
  never reported, the entire shortfall is deferred to the next fiscal
  year instead.

USAGE:
  computer := lmnp.New()
  results, err := fiscal.Project(computer, sim, 20, decimal.Zero)

SEE ALSO:
  - ../nue: The bare-rental counterpart with its -10,700 deficit floor
  - ../fiscal/amortization.go: Straight-line amortization
*/
package lmnp

import (
	"github.com/shopspring/decimal"

	"github.com/warp/fiscal-engine/fiscal"
)

// FlatAllowanceRate is the forfait allowance on furnished-rental rent.
var FlatAllowanceRate = decimal.NewFromFloat(0.50)

// Amortization durations in years.
var (
	PurchaseAmortizationYears = decimal.NewFromInt(33)
	WorksAmortizationYears    = decimal.NewFromInt(20)
)

// Computer computes furnished-rental fiscal years.
type Computer struct {
	Catalog fiscal.ExpenseCatalog
}

// New returns a Computer using the default deductible-expense catalog.
func New() Computer {
	return Computer{Catalog: DefaultCatalog()}
}

// NewWithCatalog returns a Computer using a caller-supplied catalog.
func NewWithCatalog(catalog fiscal.ExpenseCatalog) Computer {
	return Computer{Catalog: catalog}
}

// ComputeYear implements fiscal.YearComputer for furnished rental.
//
// Forfait: net = rent * (1 - 0.50), never a deficit.
// Réel:    gross = rent - deductible expenses - purchase amortization
//          - works amortization - carry-in, then RepartitionDeficit
//          floors the reported amount at zero.
func (c Computer) ComputeYear(sim fiscal.Simulation, carryForwardIn decimal.Decimal, fiscalYear int) (fiscal.YearResult, error) {
	switch sim.Regimen {
	case fiscal.RegimenForfait:
		return fiscal.FlatRateResult(sim.Rent(), FlatAllowanceRate), nil

	case fiscal.RegimenReel:
		expenses := fiscal.DeductibleExpenses(sim, fiscalYear, c.Catalog)
		gross := sim.Rent().
			Sub(expenses).
			Sub(fiscal.Amortize(sim.Field(fiscal.FieldPurchasePrice), PurchaseAmortizationYears)).
			Sub(fiscal.Amortize(sim.Field(fiscal.FieldWorksAmount), WorksAmortizationYears)).
			Sub(carryForwardIn)
		return RepartitionDeficit(gross), nil

	default:
		return fiscal.YearResult{}, &fiscal.InvalidRegimenError{Regimen: sim.Regimen}
	}
}

// Compile-time check.
var _ fiscal.YearComputer = Computer{}
