// Package store provides fiscal.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/fiscal-engine/fiscal"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	simulations map[string]fiscal.SimulationRecord
	projections map[string]fiscal.ProjectionRecord // keyed by simulation ID
}

func NewMemory() *Memory {
	return &Memory{
		simulations: make(map[string]fiscal.SimulationRecord),
		projections: make(map[string]fiscal.ProjectionRecord),
	}
}

func (m *Memory) SaveSimulation(_ context.Context, rec fiscal.SimulationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulations[rec.ID] = rec
	return nil
}

func (m *Memory) GetSimulation(_ context.Context, id string) (fiscal.SimulationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.simulations[id]
	if !ok {
		return fiscal.SimulationRecord{}, fiscal.ErrSimulationNotFound
	}
	return rec, nil
}

func (m *Memory) ListSimulations(_ context.Context) ([]fiscal.SimulationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := make([]fiscal.SimulationRecord, 0, len(m.simulations))
	for _, rec := range m.simulations {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})
	return recs, nil
}

func (m *Memory) SaveProjection(_ context.Context, rec fiscal.ProjectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projections[rec.SimulationID] = rec
	return nil
}

func (m *Memory) GetProjection(_ context.Context, simulationID string) (fiscal.ProjectionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.projections[simulationID]
	if !ok {
		return fiscal.ProjectionRecord{}, fiscal.ErrProjectionNotFound
	}
	return rec, nil
}

// Compile-time check.
var _ fiscal.Store = (*Memory)(nil)
