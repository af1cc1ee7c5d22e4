/*
catalog.go - Deductible-expense catalogs and aggregation

PURPOSE:
  An ExpenseCatalog lists which simulation fields are deductible in a
  given fiscal year. The catalog is owned by the caller (host config,
  factory JSON, or a regime package's defaults); this package only
  reads it. French rules distinguish the first year of ownership (one
  deductible set, typically including initial works for bare rental)
  from every later year (a second set).

AGGREGATION:
  DeductibleExpenses sums the catalog's fields over a simulation.
  Fields absent from the simulation contribute zero - missing optional
  expenses are not an error.

SEE ALSO:
  - ../factory: JSON catalog definitions
  - ../nue, ../lmnp: Per-family default catalogs
*/
package fiscal

import "github.com/shopspring/decimal"

// ExpenseCatalog holds the ordered deductible-field lists per fiscal-year
// bucket. Year 1 is the first year of ownership; FiscalYear2 applies to
// every year after the first.
type ExpenseCatalog struct {
	FiscalYear1 []string
	FiscalYear2 []string
}

// FieldsFor returns the deductible field list for the given fiscal year.
// The only boundary that matters is year 1 vs year >= 2.
func (c ExpenseCatalog) FieldsFor(fiscalYear int) []string {
	if fiscalYear <= 1 {
		return c.FiscalYear1
	}
	return c.FiscalYear2
}

// DeductibleExpenses sums the simulation fields deductible in the given
// fiscal year. Catalog fields absent from the simulation count as zero.
func DeductibleExpenses(sim Simulation, fiscalYear int, catalog ExpenseCatalog) decimal.Decimal {
	total := decimal.Zero
	for _, field := range catalog.FieldsFor(fiscalYear) {
		total = total.Add(sim.Field(field))
	}
	return total
}
