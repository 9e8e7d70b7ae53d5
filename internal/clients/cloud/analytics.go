package cloud

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mwhite-io/meridian/internal/models"
)

// GetAnalyticsSummary retrieves the headline analytics for a portfolio.
func (c *Client) GetAnalyticsSummary(ctx context.Context, portfolioID string) (*models.AnalyticsSummary, error) {
	var resp struct {
		Data models.AnalyticsSummary `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/analytics/summary", url.PathEscape(portfolioID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	resp.Data.PortfolioID = portfolioID
	return &resp.Data, nil
}

// GetPerformance retrieves the portfolio value series for a range.
func (c *Client) GetPerformance(ctx context.Context, portfolioID, rng string) ([]models.PerformancePoint, error) {
	rng, err := models.ParseRange(rng, "1Y")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []models.PerformancePoint `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/analytics/performance?range=%s", url.PathEscape(portfolioID), rng)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetRiskMetrics retrieves backend-computed risk figures for a portfolio.
func (c *Client) GetRiskMetrics(ctx context.Context, portfolioID string) (*models.RiskMetrics, error) {
	var resp struct {
		Data models.RiskMetrics `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/analytics/risk", url.PathEscape(portfolioID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	resp.Data.PortfolioID = portfolioID
	return &resp.Data, nil
}

// GetRebalancePlan retrieves the backend's rebalancing recommendation.
func (c *Client) GetRebalancePlan(ctx context.Context, portfolioID string) (*models.RebalancePlan, error) {
	var resp struct {
		Data models.RebalancePlan `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/rebalance", url.PathEscape(portfolioID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	resp.Data.PortfolioID = portfolioID
	return &resp.Data, nil
}
