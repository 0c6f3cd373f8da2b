package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gocausal/adapters/rng"
	"gocausal/app"
	"gocausal/internal/config"
	"gocausal/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	store := ledger.NewInMemoryLedger()
	service := app.NewScenarioService(rng.NewAdapter(), store)
	sampling := config.SamplingConfig{Seed: 42, SampleSize: 2000, TreatmentDose: 1.5}
	return NewServer(service, store, sampling)
}

func TestCreateRunReturnsResult(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/runs?n=2000&seed=7", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var result app.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2000, result.Association.SampleSize)
	assert.Equal(t, 1.0, result.Counterfactual.Case.Trait)
}

func TestCreateRunRejectsBadSampleSize(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/runs?n=-5", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRunHTMLReport(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/runs?n=2000&format=html", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1")
}

func TestListRunsAndArtifacts(t *testing.T) {
	server := newTestServer()

	// Seed one run through the API.
	req := httptest.NewRequest(http.MethodPost, "/runs?n=2000", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result app.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	req = httptest.NewRequest(http.MethodGet, "/runs", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Runs []string `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Contains(t, listed.Runs, result.RunID.String())

	req = httptest.NewRequest(http.MethodGet, "/runs/"+result.RunID.String()+"/artifacts", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var artifacts struct {
		Artifacts []json.RawMessage `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &artifacts))
	assert.Len(t, artifacts.Artifacts, 4)
}

func TestRunArtifactsNotFound(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/runs/no-such-run/artifacts", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
