/*
Package fiscal provides the core property-income tax engine.

PURPOSE:
  This package contains the regime-agnostic types and algorithms for
  computing net taxable property income under French rental tax rules.
  Whether the property is rented bare (nue) or furnished (LMNP), the
  same building blocks handle expense aggregation, amortization, and
  fiscal-year sequencing.

KEY CONCEPTS IN THIS FILE (types.go):
  - Simulation: The numeric inputs for one rental property
  - Regimen: Flat-rate allowance (forfait) vs actual-expense (réel)
  - Family: Which regime family applies (nue vs LMNP)
  - YearResult: The outcome of one fiscal year's computation

DESIGN PRINCIPLES:
  1. Purity: Every computation is a deterministic function of its inputs
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Explicit sequencing: Year N consumes year N-1's carry-forward;
     there is no hidden accumulator
  4. Open field set: Simulation fields are looked up by name so the
     deductible set stays caller-configurable (see catalog.go)

USAGE:
  sim := fiscal.NewSimulation(fiscal.RegimenReel)
  sim.SetFloat(fiscal.FieldAnnualRent, 12000)
  sim.SetFloat(fiscal.FieldPropertyTax, 900)

SEE ALSO:
  - catalog.go: Deductible-expense catalogs and aggregation
  - projection.go: Multi-year carry-forward chaining
  - ../nue, ../lmnp: The two regime-family implementations
*/
package fiscal

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// REGIMEN - Fiscal sub-regimen within a regime family
// =============================================================================

// Regimen selects how taxable income is derived from rent.
type Regimen string

const (
	// RegimenForfait applies a fixed-percentage allowance on rent.
	// No itemized deductions, never a deficit.
	RegimenForfait Regimen = "forfait"

	// RegimenReel deducts itemized expenses (and amortization for LMNP)
	// from rent. Deficits are capped and carried forward.
	RegimenReel Regimen = "reel"
)

// Family identifies the regime family a simulation is computed under.
type Family string

const (
	// FamilyNue is bare rental: no amortization, deficit floor at -10,700.
	FamilyNue Family = "nue"

	// FamilyLmnp is furnished rental: property and works amortization,
	// reported income floored at zero with full deficit deferral.
	FamilyLmnp Family = "lmnp"
)

// =============================================================================
// SIMULATION FIELDS
// =============================================================================

// Well-known simulation field names. The expense catalogs reference these;
// hosts may introduce additional fields without touching this package.
const (
	FieldAnnualRent      = "annualRent"
	FieldPurchasePrice   = "purchasePrice"
	FieldWorksAmount     = "worksAmount"
	FieldLandlordCharges = "landlordCharges"
	FieldManagementCost  = "managementCost"
	FieldGLIInsurance    = "gliInsurance"
	FieldPNOInsurance    = "pnoInsurance"
	FieldPropertyTax     = "propertyTax"
	FieldLoanInterest    = "loanInterestYear2"
	FieldLoanInsurance   = "loanInsurance"
)

// Simulation is the input record for one rental property.
// Fields absent from the map read as zero.
type Simulation struct {
	Regimen Regimen
	Fields  map[string]decimal.Decimal
}

// NewSimulation returns an empty simulation under the given regimen.
func NewSimulation(regimen Regimen) Simulation {
	return Simulation{
		Regimen: regimen,
		Fields:  make(map[string]decimal.Decimal),
	}
}

// Field returns the named field value, or zero when absent.
func (s Simulation) Field(name string) decimal.Decimal {
	if v, ok := s.Fields[name]; ok {
		return v
	}
	return decimal.Zero
}

// Set assigns a field value.
func (s Simulation) Set(name string, value decimal.Decimal) {
	s.Fields[name] = value
}

// SetFloat assigns a field value from a float64 convenience literal.
func (s Simulation) SetFloat(name string, value float64) {
	s.Fields[name] = decimal.NewFromFloat(value)
}

// Rent returns the annual rent field.
func (s Simulation) Rent() decimal.Decimal {
	return s.Field(FieldAnnualRent)
}

// =============================================================================
// YEAR RESULT - Outcome of one fiscal year
// =============================================================================

// YearResult is the outcome of one fiscal year's computation.
// Immutable once returned. CarryForward is always >= 0 and feeds into
// the next fiscal year's computation as its carry-forward input.
type YearResult struct {
	// NetTaxable is the reported taxable amount for the year. Signed:
	// bare rental may report down to -10,700, LMNP never below zero.
	NetTaxable decimal.Decimal

	// IsNegative flags that the year produced a deficit.
	IsNegative bool

	// CarryForward is the non-negative remainder deferred to the next
	// fiscal year.
	CarryForward decimal.Decimal
}

// YearComputer computes one fiscal year for a regime family.
// Implementations: nue.Computer, lmnp.Computer.
type YearComputer interface {
	// ComputeYear returns the year's result. carryForwardIn is the
	// previous year's CarryForward (zero for fiscal year 1).
	// fiscalYear is 1 for the first year of ownership, >= 2 after.
	ComputeYear(sim Simulation, carryForwardIn decimal.Decimal, fiscalYear int) (YearResult, error)
}

// FlatRateResult builds the forfait outcome: rent reduced by the given
// allowance rate, never negative, nothing carried forward.
func FlatRateResult(rent, allowance decimal.Decimal) YearResult {
	net := rent.Mul(decimal.NewFromInt(1).Sub(allowance))
	return YearResult{
		NetTaxable:   net,
		IsNegative:   false,
		CarryForward: decimal.Zero,
	}
}
