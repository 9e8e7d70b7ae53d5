package server

import (
	"net/http"
	"strings"
	"time"
)

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/logout", s.handleAuthLogout)
	mux.HandleFunc("/api/auth/me", s.handleAuthMe)

	// Dashboard
	mux.HandleFunc("/api/dashboard", s.handleDashboard)

	// Portfolios
	mux.HandleFunc("/api/portfolios/", s.routePortfolios)
	mux.HandleFunc("/api/portfolios", s.handlePortfolioList)

	// Benchmarks
	mux.HandleFunc("/api/benchmarks", s.handleBenchmarkList)

	// Insights
	mux.HandleFunc("/api/insights/briefing", s.handleInsightBriefing)
	mux.HandleFunc("/api/insights/movers", s.handleInsightMovers)
	mux.HandleFunc("/api/insights", s.handleInsightList)
}

// routePortfolios dispatches /api/portfolios/{id}/* to the appropriate handler.
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "portfolio id is required in path")
		return
	}

	parts := strings.Split(path, "/")
	portfolioID := parts[0]

	if len(parts) == 1 {
		s.handlePortfolioGet(w, r, portfolioID)
		return
	}

	switch parts[1] {
	case "holdings":
		s.handlePortfolioHoldings(w, r, portfolioID)
	case "allocation":
		s.handlePortfolioAllocation(w, r, portfolioID)
	case "transactions":
		if len(parts) >= 3 && parts[2] != "" {
			s.handleTransactionDelete(w, r, portfolioID, parts[2])
			return
		}
		s.handleTransactions(w, r, portfolioID)
	case "import":
		s.handleTransactionImport(w, r, portfolioID)
	case "analytics":
		if len(parts) < 3 {
			WriteError(w, http.StatusNotFound, "unknown analytics endpoint")
			return
		}
		switch parts[2] {
		case "summary":
			s.handleAnalyticsSummary(w, r, portfolioID)
		case "performance":
			s.handleAnalyticsPerformance(w, r, portfolioID)
		case "risk":
			s.handleAnalyticsRisk(w, r, portfolioID)
		default:
			WriteError(w, http.StatusNotFound, "unknown analytics endpoint")
		}
	case "rebalance":
		s.handleRebalance(w, r, portfolioID)
	case "benchmarks":
		if len(parts) < 3 || parts[2] == "" {
			WriteError(w, http.StatusBadRequest, "benchmark id is required in path")
			return
		}
		s.handleBenchmarkCompare(w, r, portfolioID, parts[2])
	case "charts":
		if len(parts) < 3 {
			WriteError(w, http.StatusNotFound, "unknown chart endpoint")
			return
		}
		switch parts[2] {
		case "performance":
			s.handleChartPerformance(w, r, portfolioID)
		case "benchmark":
			if len(parts) < 4 || parts[3] == "" {
				WriteError(w, http.StatusBadRequest, "benchmark id is required in path")
				return
			}
			s.handleChartBenchmark(w, r, portfolioID, parts[3])
		default:
			WriteError(w, http.StatusNotFound, "unknown chart endpoint")
		}
	default:
		WriteError(w, http.StatusNotFound, "unknown portfolio endpoint")
	}
}
