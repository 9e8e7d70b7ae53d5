package cloud

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mwhite-io/meridian/internal/models"
)

// ListPortfolios retrieves all portfolios for the authenticated user.
func (c *Client) ListPortfolios(ctx context.Context) ([]*models.Portfolio, error) {
	var resp struct {
		Data []*models.Portfolio `json:"data"`
	}
	if err := c.get(ctx, "/v1/portfolios", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetPortfolio retrieves a specific portfolio by ID.
func (c *Client) GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	var resp struct {
		Data models.Portfolio `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s", url.PathEscape(portfolioID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetHoldings retrieves holdings for a portfolio.
func (c *Client) GetHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	var resp struct {
		Data []*models.Holding `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/holdings", url.PathEscape(portfolioID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	for _, h := range resp.Data {
		h.PortfolioID = portfolioID
	}
	return resp.Data, nil
}

// GetAllocation retrieves the allocation breakdown for a portfolio.
// groupBy is one of "sector", "asset_class" or "region"; empty defaults to
// the backend's sector grouping.
func (c *Client) GetAllocation(ctx context.Context, portfolioID, groupBy string) ([]models.AllocationSlice, error) {
	var resp struct {
		Data []models.AllocationSlice `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/allocation", url.PathEscape(portfolioID))
	if groupBy != "" {
		path += "?group_by=" + url.QueryEscape(groupBy)
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
