/*
handlers.go - HTTP handler implementations

PURPOSE:
  Implements the API endpoints: simulation CRUD, single-year
  computation, multi-year projections with caching, and catalog
  inspection. Handlers validate at the boundary, call the pure engine,
  and map fiscal errors onto HTTP status codes.

ERROR MAPPING:
  fiscal.IsClientError -> 400
  fiscal.IsNotFound    -> 404
  anything else        -> 500

SEE ALSO:
  - server.go: Route wiring
  - dto.go: Request/response types
*/
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/fiscal-engine/cache"
	"github.com/warp/fiscal-engine/factory"
	"github.com/warp/fiscal-engine/fiscal"
)

// maxProjectionYears bounds the years query parameter so a client
// cannot request an absurdly long projection.
const maxProjectionYears = 50

// Handler holds the API dependencies.
type Handler struct {
	store    fiscal.Store
	cache    cache.Cache
	catalogs map[fiscal.Family]fiscal.ExpenseCatalog
}

// NewHandler creates a handler with the default per-family catalogs.
func NewHandler(store fiscal.Store, c cache.Cache) *Handler {
	h := &Handler{
		store:    store,
		cache:    c,
		catalogs: make(map[fiscal.Family]fiscal.ExpenseCatalog),
	}
	for _, family := range []fiscal.Family{fiscal.FamilyNue, fiscal.FamilyLmnp} {
		catalog, _ := factory.DefaultCatalog(family)
		h.catalogs[family] = catalog
	}
	return h
}

// SetCatalog overrides the catalog for a family (host-supplied JSON).
func (h *Handler) SetCatalog(family fiscal.Family, catalog fiscal.ExpenseCatalog) {
	h.catalogs[family] = catalog
}

// =============================================================================
// SIMULATIONS
// =============================================================================

// CreateSimulation handles POST /api/simulations.
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req CreateSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	family := fiscal.Family(req.Family)
	if err := fiscal.ValidateFamily(family); err != nil {
		writeFiscalError(w, err)
		return
	}
	sim := toSimulation(req.Regimen, req.Fields)
	if err := fiscal.ValidateSimulation(sim); err != nil {
		writeFiscalError(w, err)
		return
	}

	rec := fiscal.SimulationRecord{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Family:     family,
		Simulation: sim,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.store.SaveSimulation(r.Context(), rec); err != nil {
		log.Printf("save simulation: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save simulation")
		return
	}

	writeJSON(w, http.StatusCreated, toSimulationDTO(rec))
}

// GetSimulation handles GET /api/simulations/{id}.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetSimulation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFiscalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSimulationDTO(rec))
}

// ListSimulations handles GET /api/simulations.
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListSimulations(r.Context())
	if err != nil {
		log.Printf("list simulations: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list simulations")
		return
	}
	dtos := make([]SimulationDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toSimulationDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// COMPUTATION
// =============================================================================

// ComputeYear handles POST /api/compute/year. Stateless: the full
// simulation rides in the request, nothing is stored.
func (h *Handler) ComputeYear(w http.ResponseWriter, r *http.Request) {
	var req ComputeYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sim := toSimulation(req.Regimen, req.Fields)
	if err := fiscal.ValidateSimulation(sim); err != nil {
		writeFiscalError(w, err)
		return
	}
	if err := fiscal.ValidateFiscalYear(req.FiscalYear); err != nil {
		writeFiscalError(w, err)
		return
	}

	computer, err := h.computerFor(fiscal.Family(req.Family))
	if err != nil {
		writeFiscalError(w, err)
		return
	}

	result, err := computer.ComputeYear(sim, decimal.NewFromFloat(req.CarryForwardIn), req.FiscalYear)
	if err != nil {
		writeFiscalError(w, err)
		return
	}

	dto := toYearResultDTOs([]fiscal.YearResult{result})[0]
	dto.FiscalYear = req.FiscalYear
	writeJSON(w, http.StatusOK, dto)
}

// ComputeProjection handles POST /api/simulations/{id}/projection?years=N.
// Results are cached per (simulation, years) and persisted to the store.
func (h *Handler) ComputeProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	years := 1
	if v := r.URL.Query().Get("years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxProjectionYears {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("years must be an integer in [1, %d]", maxProjectionYears))
			return
		}
		years = n
	}

	cacheKey := fmt.Sprintf("projection:%s:%d", id, years)
	if cached, ok := h.cache.Get(cacheKey); ok {
		var dto ProjectionDTO
		if err := json.Unmarshal([]byte(cached), &dto); err == nil {
			dto.Cached = true
			writeJSON(w, http.StatusOK, dto)
			return
		}
		// Corrupt entry, drop it and recompute.
		_ = h.cache.Delete(cacheKey)
	}

	rec, err := h.store.GetSimulation(r.Context(), id)
	if err != nil {
		writeFiscalError(w, err)
		return
	}

	computer, err := h.computerFor(rec.Family)
	if err != nil {
		writeFiscalError(w, err)
		return
	}

	results, err := fiscal.Project(computer, rec.Simulation, years, decimal.Zero)
	if err != nil {
		writeFiscalError(w, err)
		return
	}

	projection := fiscal.ProjectionRecord{
		ID:           uuid.NewString(),
		SimulationID: id,
		Years:        results,
		ComputedAt:   time.Now().UTC(),
	}
	if err := h.store.SaveProjection(r.Context(), projection); err != nil {
		log.Printf("save projection: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save projection")
		return
	}

	dto := ProjectionDTO{
		SimulationID: id,
		Years:        toYearResultDTOs(results),
		ComputedAt:   projection.ComputedAt.Format(time.RFC3339),
	}
	if body, err := json.Marshal(dto); err == nil {
		if err := h.cache.Set(cacheKey, string(body)); err != nil {
			log.Printf("cache projection: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetProjection handles GET /api/simulations/{id}/projection, returning
// the last computed projection without recomputing.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetProjection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFiscalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectionDTO{
		SimulationID: rec.SimulationID,
		Years:        toYearResultDTOs(rec.Years),
		ComputedAt:   rec.ComputedAt.Format(time.RFC3339),
	})
}

// =============================================================================
// CATALOGS
// =============================================================================

// GetCatalog handles GET /api/catalogs/{family}.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	family := fiscal.Family(chi.URLParam(r, "family"))
	catalog, ok := h.catalogs[family]
	if !ok {
		writeFiscalError(w, &fiscal.InvalidFamilyError{Family: family})
		return
	}
	writeJSON(w, http.StatusOK, CatalogDTO{
		Family:      string(family),
		FiscalYear1: catalog.FiscalYear1,
		FiscalYear2: catalog.FiscalYear2,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) computerFor(family fiscal.Family) (fiscal.YearComputer, error) {
	catalog, ok := h.catalogs[family]
	if !ok {
		return nil, &fiscal.InvalidFamilyError{Family: family}
	}
	return factory.Computer(family, catalog)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeFiscalError(w http.ResponseWriter, err error) {
	switch {
	case fiscal.IsClientError(err):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_input"})
	case fiscal.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
