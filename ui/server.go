package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gocausal/app"
	"gocausal/domain/core"
	"gocausal/internal"
	"gocausal/internal/config"
	"gocausal/internal/report"
	"gocausal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the read-mostly HTTP surface over scenario runs: trigger a run,
// list runs, fetch artifacts, fetch the rendered report.
type Server struct {
	router   chi.Router
	service  *app.ScenarioService
	reader   ports.LedgerReaderPort
	reports  *report.Builder
	sampling config.SamplingConfig
	log      *internal.Logger
}

// NewServer creates a server wired to the scenario service and ledger reader
func NewServer(service *app.ScenarioService, reader ports.LedgerReaderPort, sampling config.SamplingConfig) *Server {
	s := &Server{
		service:  service,
		reader:   reader,
		reports:  report.NewBuilder(),
		sampling: sampling,
		log:      internal.NewDefaultLogger(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/runs", s.handleCreateRun)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{runID}/artifacts", s.handleRunArtifacts)

	s.router = r
	return s
}

// Handler returns the http handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	n := s.sampling.SampleSize
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	seed := s.sampling.Seed
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
		seed = parsed
	}

	dose := s.sampling.TreatmentDose
	if v := r.URL.Query().Get("dose"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "dose must be a number")
			return
		}
		dose = parsed
	}

	result, err := s.service.RunAll(r.Context(), n, dose, seed)
	if err != nil {
		s.log.Error("run failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(s.reports.HTML(result))
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := s.reader.ListRuns(r.Context(), limit)
	if err != nil {
		s.log.Error("list runs failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	runID := core.RunID(chi.URLParam(r, "runID"))
	if runID == "" {
		s.writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}

	artifacts, err := s.reader.GetArtifactsByRun(r.Context(), runID)
	if err != nil {
		s.log.Error("fetch artifacts failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(artifacts) == 0 {
		s.writeError(w, http.StatusNotFound, "no artifacts for run "+runID.String())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"run_id": runID, "artifacts": artifacts})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("response encoding failed: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
