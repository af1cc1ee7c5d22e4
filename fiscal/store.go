/*
store.go - Persistence interface for simulations and projections

PURPOSE:
  Defines the interface between the engine and the database. The core
  computation never touches a Store; persistence exists so hosts can
  keep simulations around and re-read computed projections.

KEY TYPES:
  SimulationRecord: A named, stored simulation with its regime family
  ProjectionRecord: The computed year-by-year results for a simulation

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - fiscal/store: In-memory for testing

SEE ALSO:
  - ../store/sqlite/sqlite.go: Concrete implementation
  - store/memory.go: In-memory implementation
*/
package fiscal

import (
	"context"
	"time"
)

// SimulationRecord is a stored simulation.
type SimulationRecord struct {
	ID         string
	Name       string
	Family     Family
	Simulation Simulation
	CreatedAt  time.Time
}

// ProjectionRecord is a stored multi-year projection for a simulation.
type ProjectionRecord struct {
	ID           string
	SimulationID string
	Years        []YearResult
	ComputedAt   time.Time
}

// Store persists simulations and their projections.
type Store interface {
	// SaveSimulation persists a simulation record.
	SaveSimulation(ctx context.Context, rec SimulationRecord) error

	// GetSimulation returns a simulation by ID, or ErrSimulationNotFound.
	GetSimulation(ctx context.Context, id string) (SimulationRecord, error)

	// ListSimulations returns all simulations ordered by creation time.
	ListSimulations(ctx context.Context) ([]SimulationRecord, error)

	// SaveProjection persists a projection, replacing any previous one
	// for the same simulation.
	SaveProjection(ctx context.Context, rec ProjectionRecord) error

	// GetProjection returns the latest projection for a simulation, or
	// ErrProjectionNotFound.
	GetProjection(ctx context.Context, simulationID string) (ProjectionRecord, error)
}
