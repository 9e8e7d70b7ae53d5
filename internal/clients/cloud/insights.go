package cloud

import (
	"context"
	"net/url"

	"github.com/mwhite-io/meridian/internal/models"
)

// ListInsights retrieves curated market insights, optionally filtered by
// category (market, sector, holding).
func (c *Client) ListInsights(ctx context.Context, category string) ([]*models.Insight, error) {
	path := "/v1/insights"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var resp struct {
		Data []*models.Insight `json:"data"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetMovers retrieves the day's notable price moves.
func (c *Client) GetMovers(ctx context.Context) ([]models.MarketMover, error) {
	var resp struct {
		Data []models.MarketMover `json:"data"`
	}
	if err := c.get(ctx, "/v1/insights/movers", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
