package server

import (
	"net/http"

	"github.com/mwhite-io/meridian/internal/models"
)

// --- Benchmark handlers ---

// handleBenchmarkList handles GET /api/benchmarks.
func (s *Server) handleBenchmarkList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	benchmarks, err := s.app.Cloud.ListBenchmarks(r.Context())
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, benchmarks)
}

// handleBenchmarkCompare handles GET /api/portfolios/{id}/benchmarks/{bid}.
// Supports ?range=1M|3M|6M|1Y|ALL.
func (s *Server) handleBenchmarkCompare(w http.ResponseWriter, r *http.Request, portfolioID, benchmarkID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rng, err := models.ParseRange(r.URL.Query().Get("range"), s.app.Config.Dashboard.DefaultRange)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmp, err := s.app.Cloud.CompareBenchmark(r.Context(), portfolioID, benchmarkID, rng)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, cmp)
}
