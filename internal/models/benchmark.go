package models

import "time"

// Benchmark is a comparison index offered by the backend.
type Benchmark struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// ComparisonPoint is one point on an indexed (base-100) comparison series.
type ComparisonPoint struct {
	Date           time.Time `json:"date"`
	PortfolioIndex float64   `json:"portfolio_index"`
	BenchmarkIndex float64   `json:"benchmark_index"`
}

// BenchmarkComparison is the backend's portfolio-vs-benchmark series for a
// given range, both series indexed to 100 at the range start.
type BenchmarkComparison struct {
	PortfolioID        string            `json:"portfolio_id"`
	BenchmarkID        string            `json:"benchmark_id"`
	BenchmarkName      string            `json:"benchmark_name"`
	Range              string            `json:"range"`
	PortfolioReturnPct float64           `json:"portfolio_return_pct"`
	BenchmarkReturnPct float64           `json:"benchmark_return_pct"`
	Points             []ComparisonPoint `json:"points"`
}

// ExcessReturnPct is the portfolio return over the benchmark for the range.
func (b *BenchmarkComparison) ExcessReturnPct() float64 {
	return b.PortfolioReturnPct - b.BenchmarkReturnPct
}
