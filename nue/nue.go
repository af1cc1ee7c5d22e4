/*
Package nue implements the bare-rental (location nue) regime family.

PURPOSE:
  Bare rental has no amortization. Under the forfait regimen a flat 30%
  allowance applies to rent. Under the réel regimen itemized expenses
  are deducted and a deficit is reported at most down to -10,700 for a
  single fiscal year, with the remainder carried forward - see
  repartition.go for the branch rules.

USAGE:
  computer := nue.New()
  result, err := computer.ComputeYear(sim, decimal.Zero, 1)

  // Or a full multi-year projection:
  results, err := fiscal.Project(computer, sim, 20, decimal.Zero)

SEE ALSO:
  - repartition.go: Deficit capping and carry-forward rules
  - ../lmnp: The furnished-rental counterpart
*/
package nue

import (
	"github.com/shopspring/decimal"

	"github.com/warp/fiscal-engine/fiscal"
)

// FlatAllowanceRate is the forfait allowance on bare-rental rent.
var FlatAllowanceRate = decimal.NewFromFloat(0.30)

// Computer computes bare-rental fiscal years.
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

// ComputeYear implements fiscal.YearComputer for bare rental.
//
// Forfait: net = rent * (1 - 0.30), never a deficit.
// Réel:    pre-cap amount = rent - deductible expenses - carry-in,
//          then RepartitionDeficit decides the reported amount and the
//          carry-forward.
func (c Computer) ComputeYear(sim fiscal.Simulation, carryForwardIn decimal.Decimal, fiscalYear int) (fiscal.YearResult, error) {
	switch sim.Regimen {
	case fiscal.RegimenForfait:
		return fiscal.FlatRateResult(sim.Rent(), FlatAllowanceRate), nil

	case fiscal.RegimenReel:
		expenses := fiscal.DeductibleExpenses(sim, fiscalYear, c.Catalog)
		preCap := sim.Rent().Sub(expenses).Sub(carryForwardIn)
		return RepartitionDeficit(preCap, sim.Rent(), sim.Field(fiscal.FieldLoanInterest)), nil

	default:
		return fiscal.YearResult{}, &fiscal.InvalidRegimenError{Regimen: sim.Regimen}
	}
}

// Compile-time check.
var _ fiscal.YearComputer = Computer{}
