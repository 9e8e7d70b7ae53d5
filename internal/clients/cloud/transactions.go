package cloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mwhite-io/meridian/internal/models"
)

// ListTransactions retrieves transactions for a portfolio, newest first.
func (c *Client) ListTransactions(ctx context.Context, portfolioID string, filter models.TransactionFilter) ([]*models.Transaction, error) {
	q := url.Values{}
	if filter.Symbol != "" {
		q.Set("symbol", filter.Symbol)
	}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.From != "" {
		q.Set("from", filter.From)
	}
	if filter.To != "" {
		q.Set("to", filter.To)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := fmt.Sprintf("/v1/portfolios/%s/transactions", url.PathEscape(portfolioID))
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Data []*models.Transaction `json:"data"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateTransaction records a new transaction. The input is validated
// locally before it is sent; the backend remains the source of truth for
// resulting positions and analytics.
func (c *Client) CreateTransaction(ctx context.Context, portfolioID string, input models.TransactionInput) (*models.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var resp struct {
		Data models.Transaction `json:"data"`
	}
	path := fmt.Sprintf("/v1/portfolios/%s/transactions", url.PathEscape(portfolioID))
	if err := c.do(ctx, http.MethodPost, path, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, portfolioID, transactionID string) error {
	path := fmt.Sprintf("/v1/portfolios/%s/transactions/%s",
		url.PathEscape(portfolioID), url.PathEscape(transactionID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
