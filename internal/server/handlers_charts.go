package server

import (
	"net/http"
)

// --- Chart handlers ---

// handleChartPerformance handles GET /api/portfolios/{id}/charts/performance.
// Returns a PNG. Supports ?range=1M|3M|6M|1Y|ALL.
func (s *Server) handleChartPerformance(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.Dashboard.PerformanceChart(r.Context(), portfolioID, r.URL.Query().Get("range"))
	if err != nil {
		WriteClientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleChartBenchmark handles GET /api/portfolios/{id}/charts/benchmark/{bid}.
// Returns a PNG. Supports ?range=1M|3M|6M|1Y|ALL.
func (s *Server) handleChartBenchmark(w http.ResponseWriter, r *http.Request, portfolioID, benchmarkID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.Dashboard.BenchmarkChart(r.Context(), portfolioID, benchmarkID, r.URL.Query().Get("range"))
	if err != nil {
		WriteClientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
