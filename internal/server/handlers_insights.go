package server

import (
	"net/http"
)

// --- Insight handlers ---

// handleInsightList handles GET /api/insights. Supports ?category=.
func (s *Server) handleInsightList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	insights, err := s.app.Insights.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, insights)
}

// handleInsightBriefing handles GET /api/insights/briefing.
func (s *Server) handleInsightBriefing(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	briefing, err := s.app.Insights.Briefing(r.Context())
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, briefing)
}

// handleInsightMovers handles GET /api/insights/movers.
func (s *Server) handleInsightMovers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	movers, err := s.app.Cloud.GetMovers(r.Context())
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, movers)
}
