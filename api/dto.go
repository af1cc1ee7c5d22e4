/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.
  Monetary values cross the wire as float64; the conversion to
  decimal.Decimal happens once at the boundary.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/fiscal-engine/fiscal"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SimulationDTO represents a stored simulation in API responses.
type SimulationDTO struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Family    string             `json:"family"`
	Regimen   string             `json:"regimen"`
	Fields    map[string]float64 `json:"fields"`
	CreatedAt string             `json:"created_at,omitempty"`
}

// CreateSimulationRequest is the request to create a simulation.
type CreateSimulationRequest struct {
	Name    string             `json:"name"`
	Family  string             `json:"family"`
	Regimen string             `json:"regimen"`
	Fields  map[string]float64 `json:"fields"`
}

// YearResultDTO represents one fiscal year's outcome.
type YearResultDTO struct {
	FiscalYear   int     `json:"fiscal_year"`
	NetTaxable   float64 `json:"net_taxable"`
	IsNegative   bool    `json:"is_negative"`
	CarryForward float64 `json:"carry_forward"`
}

// ProjectionDTO represents a multi-year projection.
type ProjectionDTO struct {
	SimulationID string          `json:"simulation_id"`
	Years        []YearResultDTO `json:"years"`
	ComputedAt   string          `json:"computed_at,omitempty"`
	Cached       bool            `json:"cached,omitempty"`
}

// ComputeYearRequest is the stateless single-year computation request.
type ComputeYearRequest struct {
	Family         string             `json:"family"`
	Regimen        string             `json:"regimen"`
	Fields         map[string]float64 `json:"fields"`
	FiscalYear     int                `json:"fiscal_year"`
	CarryForwardIn float64            `json:"carry_forward_in"`
}

// CatalogDTO represents a deductible-expense catalog.
type CatalogDTO struct {
	Family      string   `json:"family"`
	FiscalYear1 []string `json:"fiscal_year_1"`
	FiscalYear2 []string `json:"fiscal_year_2"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toSimulationDTO(rec fiscal.SimulationRecord) SimulationDTO {
	fields := make(map[string]float64, len(rec.Simulation.Fields))
	for name, value := range rec.Simulation.Fields {
		fields[name], _ = value.Float64()
	}
	return SimulationDTO{
		ID:        rec.ID,
		Name:      rec.Name,
		Family:    string(rec.Family),
		Regimen:   string(rec.Simulation.Regimen),
		Fields:    fields,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
}

func toYearResultDTOs(years []fiscal.YearResult) []YearResultDTO {
	dtos := make([]YearResultDTO, len(years))
	for i, y := range years {
		net, _ := y.NetTaxable.Float64()
		carry, _ := y.CarryForward.Float64()
		dtos[i] = YearResultDTO{
			FiscalYear:   i + 1,
			NetTaxable:   net,
			IsNegative:   y.IsNegative,
			CarryForward: carry,
		}
	}
	return dtos
}

func toSimulation(regimen string, fields map[string]float64) fiscal.Simulation {
	sim := fiscal.NewSimulation(fiscal.Regimen(regimen))
	for name, value := range fields {
		sim.Set(name, decimal.NewFromFloat(value))
	}
	return sim
}
