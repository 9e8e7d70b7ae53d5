package cloud

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mwhite-io/meridian/internal/models"
)

// ListBenchmarks retrieves the comparison indices offered by the backend.
func (c *Client) ListBenchmarks(ctx context.Context) ([]*models.Benchmark, error) {
	var resp struct {
		Data []*models.Benchmark `json:"data"`
	}
	if err := c.get(ctx, "/v1/benchmarks", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CompareBenchmark retrieves the indexed portfolio-vs-benchmark series.
func (c *Client) CompareBenchmark(ctx context.Context, portfolioID, benchmarkID, rng string) (*models.BenchmarkComparison, error) {
	rng, err := models.ParseRange(rng, "1Y")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data models.BenchmarkComparison `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/benchmarks/%s?range=%s",
		url.PathEscape(portfolioID), url.PathEscape(benchmarkID), rng)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	resp.Data.PortfolioID = portfolioID
	resp.Data.BenchmarkID = benchmarkID
	resp.Data.Range = rng
	return &resp.Data, nil
}
