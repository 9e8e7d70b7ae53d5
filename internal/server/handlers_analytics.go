package server

import (
	"net/http"

	"github.com/mwhite-io/meridian/internal/models"
)

// --- Analytics handlers ---

// handleAnalyticsSummary handles GET /api/portfolios/{id}/analytics/summary.
func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.Cloud.GetAnalyticsSummary(r.Context(), portfolioID)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// handleAnalyticsPerformance handles GET /api/portfolios/{id}/analytics/performance.
// Supports ?range=1M|3M|6M|1Y|ALL.
func (s *Server) handleAnalyticsPerformance(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rng, err := models.ParseRange(r.URL.Query().Get("range"), s.app.Config.Dashboard.DefaultRange)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := s.app.Cloud.GetPerformance(r.Context(), portfolioID, rng)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, points)
}

// handleAnalyticsRisk handles GET /api/portfolios/{id}/analytics/risk.
func (s *Server) handleAnalyticsRisk(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	metrics, err := s.app.Cloud.GetRiskMetrics(r.Context(), portfolioID)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, metrics)
}

// handleRebalance handles GET /api/portfolios/{id}/rebalance.
func (s *Server) handleRebalance(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	plan, err := s.app.Cloud.GetRebalancePlan(r.Context(), portfolioID)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, plan)
}
