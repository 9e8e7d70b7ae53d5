package server

import (
	"net/http"
)

// --- Portfolio handlers ---

// handlePortfolioList handles GET /api/portfolios.
func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	portfolios, err := s.app.Cloud.ListPortfolios(r.Context())
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, portfolios)
}

// handlePortfolioGet handles GET /api/portfolios/{id}.
func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	portfolio, err := s.app.Cloud.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, portfolio)
}

// handlePortfolioHoldings handles GET /api/portfolios/{id}/holdings.
func (s *Server) handlePortfolioHoldings(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	holdings, err := s.app.Cloud.GetHoldings(r.Context(), portfolioID)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, holdings)
}

// handlePortfolioAllocation handles GET /api/portfolios/{id}/allocation.
// Supports ?group_by=sector|asset_class|currency.
func (s *Server) handlePortfolioAllocation(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	groupBy := r.URL.Query().Get("group_by")

	allocation, err := s.app.Cloud.GetAllocation(r.Context(), portfolioID, groupBy)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, allocation)
}
