package models

import (
	"fmt"
	"strings"
	"time"
)

// Ranges accepted by the analytics and benchmark endpoints.
var validRanges = map[string]bool{
	"1M": true, "3M": true, "6M": true, "1Y": true, "ALL": true,
}

// ParseRange normalises a range string, defaulting empty input to fallback.
func ParseRange(s, fallback string) (string, error) {
	if s == "" {
		s = fallback
	}
	r := strings.ToUpper(strings.TrimSpace(s))
	if !validRanges[r] {
		return "", fmt.Errorf("invalid range %q (want 1M, 3M, 6M, 1Y or ALL)", s)
	}
	return r, nil
}

// AnalyticsSummary is the backend's headline figures for the dashboard.
type AnalyticsSummary struct {
	PortfolioID   string    `json:"portfolio_id"`
	TotalValue    float64   `json:"total_value"`
	TotalCost     float64   `json:"total_cost"`
	TotalGain     float64   `json:"total_gain"`
	TotalGainPct  float64   `json:"total_gain_pct"`
	DayChange     float64   `json:"day_change"`
	DayChangePct  float64   `json:"day_change_pct"`
	IRR           float64   `json:"irr"`
	DividendYield float64   `json:"dividend_yield"`
	AsOf          time.Time `json:"as_of"`
}

// PerformancePoint is one point on the portfolio value series.
type PerformancePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Cost  float64   `json:"cost"`
}

// RiskMetrics are backend-computed risk figures.
type RiskMetrics struct {
	PortfolioID string    `json:"portfolio_id"`
	Volatility  float64   `json:"volatility"`
	SharpeRatio float64   `json:"sharpe_ratio"`
	MaxDrawdown float64   `json:"max_drawdown"`
	Beta        float64   `json:"beta"`
	ValueAtRisk float64   `json:"value_at_risk"`
	AsOf        time.Time `json:"as_of"`
}

// RecommendedTrade is one leg of a rebalancing recommendation.
type RecommendedTrade struct {
	Symbol         string  `json:"symbol"`
	Action         string  `json:"action"` // buy or sell
	Units          float64 `json:"units"`
	EstimatedValue float64 `json:"estimated_value"`
	CurrentWeight  float64 `json:"current_weight"`
	TargetWeight   float64 `json:"target_weight"`
}

// RebalancePlan is the backend's suggested trades to realign a portfolio
// to its target allocation.
type RebalancePlan struct {
	PortfolioID string             `json:"portfolio_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	DriftPct    float64            `json:"drift_pct"`
	Trades      []RecommendedTrade `json:"trades"`
}
