/*
Package sqlite provides a SQLite-backed implementation of fiscal.Store.

PURPOSE:
  Persists simulations and their computed projections. In production
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  simulations: One row per stored simulation; the numeric fields are
               kept as a JSON document since the field set is open
               (catalogs may reference host-specific fields).
  projections: Latest computed projection per simulation, year results
               as a JSON array. Replaced on recompute.

DECIMAL ENCODING:
  decimal.Decimal marshals to an exact JSON number, so round-tripping
  through the JSON columns loses no precision.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't
  block the single writer.

USAGE:
  store, err := sqlite.New("./data/fiscal.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - fiscal/store.go: Interface definition
  - fiscal/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/fiscal-engine/fiscal"
)

// Store implements fiscal.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS simulations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		family TEXT NOT NULL,
		regimen TEXT NOT NULL,
		fields_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projections (
		id TEXT PRIMARY KEY,
		simulation_id TEXT NOT NULL UNIQUE REFERENCES simulations(id),
		years_json TEXT NOT NULL,
		computed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_simulations_created_at
		ON simulations(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SIMULATIONS
// =============================================================================

func (s *Store) SaveSimulation(ctx context.Context, rec fiscal.SimulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := json.Marshal(rec.Simulation.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO simulations (id, name, family, regimen, fields_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			family = excluded.family,
			regimen = excluded.regimen,
			fields_json = excluded.fields_json`,
		rec.ID, rec.Name, string(rec.Family), string(rec.Simulation.Regimen),
		string(fields), rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) GetSimulation(ctx context.Context, id string) (fiscal.SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, family, regimen, fields_json, created_at
		FROM simulations WHERE id = ?`, id)

	rec, err := scanSimulation(row)
	if err == sql.ErrNoRows {
		return fiscal.SimulationRecord{}, fiscal.ErrSimulationNotFound
	}
	return rec, err
}

func (s *Store) ListSimulations(ctx context.Context) ([]fiscal.SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, family, regimen, fields_json, created_at
		FROM simulations ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []fiscal.SimulationRecord
	for rows.Next() {
		rec, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (fiscal.SimulationRecord, error) {
	var rec fiscal.SimulationRecord
	var family, regimen, fieldsJSON, createdAt string

	if err := row.Scan(&rec.ID, &rec.Name, &family, &regimen, &fieldsJSON, &createdAt); err != nil {
		return fiscal.SimulationRecord{}, err
	}

	fields := make(map[string]decimal.Decimal)
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return fiscal.SimulationRecord{}, fmt.Errorf("unmarshal fields: %w", err)
	}

	rec.Family = fiscal.Family(family)
	rec.Simulation = fiscal.Simulation{
		Regimen: fiscal.Regimen(regimen),
		Fields:  fields,
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}

// =============================================================================
// PROJECTIONS
// =============================================================================

func (s *Store) SaveProjection(ctx context.Context, rec fiscal.ProjectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	years, err := json.Marshal(rec.Years)
	if err != nil {
		return fmt.Errorf("marshal years: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projections (id, simulation_id, years_json, computed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(simulation_id) DO UPDATE SET
			id = excluded.id,
			years_json = excluded.years_json,
			computed_at = excluded.computed_at`,
		rec.ID, rec.SimulationID, string(years),
		rec.ComputedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) GetProjection(ctx context.Context, simulationID string) (fiscal.ProjectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec fiscal.ProjectionRecord
	var yearsJSON, computedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, simulation_id, years_json, computed_at
		FROM projections WHERE simulation_id = ?`, simulationID).
		Scan(&rec.ID, &rec.SimulationID, &yearsJSON, &computedAt)
	if err == sql.ErrNoRows {
		return fiscal.ProjectionRecord{}, fiscal.ErrProjectionNotFound
	}
	if err != nil {
		return fiscal.ProjectionRecord{}, err
	}

	if err := json.Unmarshal([]byte(yearsJSON), &rec.Years); err != nil {
		return fiscal.ProjectionRecord{}, fmt.Errorf("unmarshal years: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, computedAt); err == nil {
		rec.ComputedAt = t
	}
	return rec, nil
}

// Compile-time check.
var _ fiscal.Store = (*Store)(nil)
