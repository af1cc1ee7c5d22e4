package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/fiscal-engine/api"
	"github.com/warp/fiscal-engine/cache"
	"github.com/warp/fiscal-engine/fiscal/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	handler := api.NewHandler(store.NewMemory(), cache.NewMemory())
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createSimulation(t *testing.T, server *httptest.Server, req api.CreateSimulationRequest) api.SimulationDTO {
	t.Helper()
	resp := postJSON(t, server.URL+"/api/simulations", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[api.SimulationDTO](t, resp)
}

// lmnpDeficitRequest: rent 6000 vs 4000 expenses + 4000 amortization,
// so every projected year defers 2000 more.
func lmnpDeficitRequest() api.CreateSimulationRequest {
	return api.CreateSimulationRequest{
		Name:    "studio Rennes",
		Family:  "lmnp",
		Regimen: "reel",
		Fields: map[string]float64{
			"annualRent":        6000,
			"purchasePrice":     99000,
			"worksAmount":       20000,
			"propertyTax":       1000,
			"managementCost":    500,
			"gliInsurance":      250,
			"pnoInsurance":      250,
			"loanInterestYear2": 1500,
			"loanInsurance":     500,
		},
	}
}

// =============================================================================
// SIMULATION CRUD
// =============================================================================

func TestCreateAndGetSimulation(t *testing.T) {
	server := newTestServer(t)

	created := createSimulation(t, server, lmnpDeficitRequest())
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "lmnp", created.Family)

	resp, err := http.Get(server.URL + "/api/simulations/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decodeBody[api.SimulationDTO](t, resp)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 6000.0, got.Fields["annualRent"])
}

func TestListSimulations(t *testing.T) {
	server := newTestServer(t)
	createSimulation(t, server, lmnpDeficitRequest())

	resp, err := http.Get(server.URL + "/api/simulations")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decodeBody[[]api.SimulationDTO](t, resp)
	assert.Len(t, list, 1)
}

func TestGetSimulation_NotFound(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/simulations/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateSimulation_Rejections(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		req  api.CreateSimulationRequest
	}{
		{"unknown family", api.CreateSimulationRequest{Family: "pinel", Regimen: "reel"}},
		{"unknown regimen", api.CreateSimulationRequest{Family: "nue", Regimen: "micro"}},
		{"negative rent", api.CreateSimulationRequest{
			Family: "nue", Regimen: "reel",
			Fields: map[string]float64{"annualRent": -1},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/api/simulations", tc.req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeBody[api.ErrorResponse](t, resp)
			assert.Equal(t, "invalid_input", body.Code)
		})
	}
}

// =============================================================================
// STATELESS SINGLE-YEAR COMPUTATION
// =============================================================================

func TestComputeYear_NueForfait(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/compute/year", api.ComputeYearRequest{
		Family:     "nue",
		Regimen:    "forfait",
		Fields:     map[string]float64{"annualRent": 12000},
		FiscalYear: 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[api.YearResultDTO](t, resp)
	assert.Equal(t, 8400.0, result.NetTaxable)
	assert.False(t, result.IsNegative)
	assert.Equal(t, 0.0, result.CarryForward)
}

func TestComputeYear_NueReelFirstYearDeficit(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/compute/year", api.ComputeYearRequest{
		Family:  "nue",
		Regimen: "reel",
		Fields: map[string]float64{
			"annualRent":        5000,
			"worksAmount":       14000,
			"propertyTax":       2000,
			"managementCost":    1000,
			"loanInterestYear2": 2000,
			"loanInsurance":     1000,
		},
		FiscalYear: 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[api.YearResultDTO](t, resp)
	assert.Equal(t, -10700.0, result.NetTaxable)
	assert.True(t, result.IsNegative)
	assert.Equal(t, 4300.0, result.CarryForward)
}

func TestComputeYear_InvalidRegimen(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/compute/year", api.ComputeYearRequest{
		Family:     "nue",
		Regimen:    "micro-foncier",
		Fields:     map[string]float64{"annualRent": 12000},
		FiscalYear: 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[api.ErrorResponse](t, resp)
	assert.Contains(t, body.Error, "micro-foncier")
}

func TestComputeYear_InvalidFiscalYear(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/compute/year", api.ComputeYearRequest{
		Family:     "lmnp",
		Regimen:    "forfait",
		Fields:     map[string]float64{"annualRent": 12000},
		FiscalYear: 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// PROJECTIONS
// =============================================================================

func TestComputeProjection_ChainsCarryForward(t *testing.T) {
	server := newTestServer(t)
	created := createSimulation(t, server, lmnpDeficitRequest())

	url := fmt.Sprintf("%s/api/simulations/%s/projection?years=3", server.URL, created.ID)
	resp := postJSON(t, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	projection := decodeBody[api.ProjectionDTO](t, resp)
	require.Len(t, projection.Years, 3)
	assert.False(t, projection.Cached)

	wantCarries := []float64{2000, 4000, 6000}
	for i, year := range projection.Years {
		assert.Equal(t, i+1, year.FiscalYear)
		assert.Equal(t, 0.0, year.NetTaxable)
		assert.True(t, year.IsNegative)
		assert.Equal(t, wantCarries[i], year.CarryForward)
	}

	// The stored projection is readable without recomputing.
	getResp, err := http.Get(fmt.Sprintf("%s/api/simulations/%s/projection", server.URL, created.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	stored := decodeBody[api.ProjectionDTO](t, getResp)
	assert.Len(t, stored.Years, 3)
}

func TestComputeProjection_SecondCallServedFromCache(t *testing.T) {
	server := newTestServer(t)
	created := createSimulation(t, server, lmnpDeficitRequest())
	url := fmt.Sprintf("%s/api/simulations/%s/projection?years=2", server.URL, created.ID)

	first := decodeBody[api.ProjectionDTO](t, postJSON(t, url, nil))
	assert.False(t, first.Cached)

	second := decodeBody[api.ProjectionDTO](t, postJSON(t, url, nil))
	assert.True(t, second.Cached)
	assert.Equal(t, first.Years, second.Years)
}

func TestComputeProjection_YearsBounds(t *testing.T) {
	server := newTestServer(t)
	created := createSimulation(t, server, lmnpDeficitRequest())

	for _, years := range []string{"0", "-1", "51", "abc"} {
		url := fmt.Sprintf("%s/api/simulations/%s/projection?years=%s", server.URL, created.ID, years)
		resp := postJSON(t, url, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "years=%s", years)
	}
}

func TestGetProjection_NotComputedYet(t *testing.T) {
	server := newTestServer(t)
	created := createSimulation(t, server, lmnpDeficitRequest())

	resp, err := http.Get(fmt.Sprintf("%s/api/simulations/%s/projection", server.URL, created.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// CATALOGS
// =============================================================================

func TestGetCatalog(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/catalogs/nue")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	catalog := decodeBody[api.CatalogDTO](t, resp)
	assert.Contains(t, catalog.FiscalYear1, "worksAmount")
	assert.NotContains(t, catalog.FiscalYear2, "worksAmount")

	resp, err = http.Get(server.URL + "/api/catalogs/pinel")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
