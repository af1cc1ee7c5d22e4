/*
Package factory provides JSON to Go simulation-plan conversion.

PURPOSE:
  Converts JSON plan definitions into fiscal.Simulation records, expense
  catalogs, and the matching regime-family computer. This enables
  simulation configuration without code changes - a host (or an admin
  UI) defines plans in JSON and the factory creates the proper Go
  structs.

JSON SCHEMA:
  {
    "name": "T2 Lyon, réel",
    "family": "nue",
    "regimen": "reel",
    "years": 20,
    "fields": {
      "annualRent": 12000,
      "purchasePrice": 180000,
      "propertyTax": 900
    },
    "catalog": {
      "fiscal_year_1": ["worksAmount", "propertyTax"],
      "fiscal_year_2": ["propertyTax"]
    }
  }

KEY FEATURES:
  - Validates structure and numeric domains at the boundary
  - Omitted catalog falls back to the family's default
  - Builds the matching fiscal.YearComputer for the family

USAGE:
  f := factory.New()
  plan, err := f.ParsePlan(jsonBytes)
  results, err := fiscal.Project(plan.Computer, plan.Simulation, plan.Years, decimal.Zero)

SEE ALSO:
  - ../fiscal/catalog.go: ExpenseCatalog definition
  - ../nue, ../lmnp: Default catalogs and computers
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/fiscal-engine/fiscal"
	"github.com/warp/fiscal-engine/lmnp"
	"github.com/warp/fiscal-engine/nue"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PlanJSON is the JSON representation of a simulation plan.
type PlanJSON struct {
	Name    string             `json:"name"`
	Family  string             `json:"family"`
	Regimen string             `json:"regimen"`
	Years   int                `json:"years"`
	Fields  map[string]float64 `json:"fields"`
	Catalog *CatalogJSON       `json:"catalog,omitempty"`
}

// CatalogJSON is the JSON representation of an expense catalog.
type CatalogJSON struct {
	FiscalYear1 []string `json:"fiscal_year_1"`
	FiscalYear2 []string `json:"fiscal_year_2"`
}

// =============================================================================
// PLAN - Parsed, validated, ready to project
// =============================================================================

// Plan bundles everything needed to project a simulation.
type Plan struct {
	Name       string
	Family     fiscal.Family
	Years      int
	Simulation fiscal.Simulation
	Catalog    fiscal.ExpenseCatalog
	Computer   fiscal.YearComputer
}

// Factory converts JSON plan definitions into Plans.
type Factory struct{}

// New creates a plan factory.
func New() *Factory {
	return &Factory{}
}

// ParsePlan parses and validates a JSON plan.
func (f *Factory) ParsePlan(data []byte) (*Plan, error) {
	var pj PlanJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	family := fiscal.Family(pj.Family)
	if err := fiscal.ValidateFamily(family); err != nil {
		return nil, err
	}

	sim := fiscal.NewSimulation(fiscal.Regimen(pj.Regimen))
	for name, value := range pj.Fields {
		sim.SetFloat(name, value)
	}
	if err := fiscal.ValidateSimulation(sim); err != nil {
		return nil, err
	}

	years := pj.Years
	if years == 0 {
		years = 1 // single-year plan by default
	}
	if years < 1 {
		return nil, &fiscal.InvalidInputError{Field: "years", Reason: "must be >= 1"}
	}

	catalog, err := f.catalogFor(family, pj.Catalog)
	if err != nil {
		return nil, err
	}
	computer, err := Computer(family, catalog)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Name:       pj.Name,
		Family:     family,
		Years:      years,
		Simulation: sim,
		Catalog:    catalog,
		Computer:   computer,
	}, nil
}

// ParseCatalog parses a standalone JSON catalog.
func (f *Factory) ParseCatalog(data []byte) (fiscal.ExpenseCatalog, error) {
	var cj CatalogJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return fiscal.ExpenseCatalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	return fiscal.ExpenseCatalog{
		FiscalYear1: cj.FiscalYear1,
		FiscalYear2: cj.FiscalYear2,
	}, nil
}

func (f *Factory) catalogFor(family fiscal.Family, cj *CatalogJSON) (fiscal.ExpenseCatalog, error) {
	if cj != nil {
		return fiscal.ExpenseCatalog{
			FiscalYear1: cj.FiscalYear1,
			FiscalYear2: cj.FiscalYear2,
		}, nil
	}
	return DefaultCatalog(family)
}

// =============================================================================
// FAMILY DISPATCH
// =============================================================================

// Computer returns the regime-family computer for a family and catalog.
func Computer(family fiscal.Family, catalog fiscal.ExpenseCatalog) (fiscal.YearComputer, error) {
	switch family {
	case fiscal.FamilyNue:
		return nue.NewWithCatalog(catalog), nil
	case fiscal.FamilyLmnp:
		return lmnp.NewWithCatalog(catalog), nil
	default:
		return nil, &fiscal.InvalidFamilyError{Family: family}
	}
}

// DefaultCatalog returns the stock catalog for a family.
func DefaultCatalog(family fiscal.Family) (fiscal.ExpenseCatalog, error) {
	switch family {
	case fiscal.FamilyNue:
		return nue.DefaultCatalog(), nil
	case fiscal.FamilyLmnp:
		return lmnp.DefaultCatalog(), nil
	default:
		return fiscal.ExpenseCatalog{}, &fiscal.InvalidFamilyError{Family: family}
	}
}
