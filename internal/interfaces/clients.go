// Package interfaces defines the contracts between Meridian's layers.
package interfaces

import (
	"context"

	"github.com/mwhite-io/meridian/internal/models"
)

// CloudClient is the typed client for the Meridian Cloud API. Every call
// attaches the stored bearer token; a 401 triggers a single token refresh
// and replay before the error is surfaced.
type CloudClient interface {
	// Auth
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)

	// Portfolios
	ListPortfolios(ctx context.Context) ([]*models.Portfolio, error)
	GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error)
	GetHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error)
	GetAllocation(ctx context.Context, portfolioID, groupBy string) ([]models.AllocationSlice, error)

	// Transactions
	ListTransactions(ctx context.Context, portfolioID string, filter models.TransactionFilter) ([]*models.Transaction, error)
	CreateTransaction(ctx context.Context, portfolioID string, input models.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, portfolioID, transactionID string) error

	// Analytics
	GetAnalyticsSummary(ctx context.Context, portfolioID string) (*models.AnalyticsSummary, error)
	GetPerformance(ctx context.Context, portfolioID, rng string) ([]models.PerformancePoint, error)
	GetRiskMetrics(ctx context.Context, portfolioID string) (*models.RiskMetrics, error)
	GetRebalancePlan(ctx context.Context, portfolioID string) (*models.RebalancePlan, error)

	// Benchmarks
	ListBenchmarks(ctx context.Context) ([]*models.Benchmark, error)
	CompareBenchmark(ctx context.Context, portfolioID, benchmarkID, rng string) (*models.BenchmarkComparison, error)

	// Insights
	ListInsights(ctx context.Context, category string) ([]*models.Insight, error)
	GetMovers(ctx context.Context) ([]models.MarketMover, error)
}

// GeminiClient generates AI content for insight briefings.
type GeminiClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
	Close() error
}
