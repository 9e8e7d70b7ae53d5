package interfaces

import (
	"context"

	"github.com/mwhite-io/meridian/internal/models"
)

// DashboardSnapshot is the aggregated home view: portfolios, headline
// analytics for the default portfolio, and current market movers.
type DashboardSnapshot struct {
	Portfolios  []*models.Portfolio      `json:"portfolios"`
	Summary     *models.AnalyticsSummary `json:"summary,omitempty"`
	Movers      []models.MarketMover     `json:"movers,omitempty"`
	RefreshedAt string                   `json:"refreshed_at"`
}

// DashboardService aggregates backend data into dashboard views and renders
// chart images.
type DashboardService interface {
	Snapshot(ctx context.Context, force bool) (*DashboardSnapshot, error)
	PerformanceChart(ctx context.Context, portfolioID, rng string) ([]byte, error)
	BenchmarkChart(ctx context.Context, portfolioID, benchmarkID, rng string) ([]byte, error)
}

// InsightService lists insights and produces briefings.
type InsightService interface {
	List(ctx context.Context, category string) ([]*models.Insight, error)
	Briefing(ctx context.Context) (*models.Briefing, error)
}

// ImportResult reports the outcome of a bulk transaction import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportService parses broker exports into transactions and pushes them to
// the backend.
type ImportService interface {
	ImportCSV(ctx context.Context, portfolioID string, data []byte) (*ImportResult, error)
	ImportPDF(ctx context.Context, portfolioID string, path string) (*ImportResult, error)
}
