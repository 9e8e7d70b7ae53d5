package models

import "time"

// Portfolio is a named collection of holdings tracked by the backend.
// All totals are backend-computed; the gateway never derives them.
type Portfolio struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Currency     string    `json:"currency"`
	TotalValue   float64   `json:"total_value"`
	TotalCost    float64   `json:"total_cost"`
	TotalGain    float64   `json:"total_gain"`
	TotalGainPct float64   `json:"total_gain_pct"`
	HoldingCount int       `json:"holding_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Holding is a single position within a portfolio.
type Holding struct {
	ID           string  `json:"id"`
	PortfolioID  string  `json:"portfolio_id"`
	Symbol       string  `json:"symbol"`
	Exchange     string  `json:"exchange"`
	Name         string  `json:"name"`
	Units        float64 `json:"units"`
	AvgCost      float64 `json:"avg_cost"`
	TotalCost    float64 `json:"total_cost"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	GainLoss     float64 `json:"gain_loss"`
	GainLossPct  float64 `json:"gain_loss_pct"`
	Weight       float64 `json:"weight"` // fraction of portfolio value
}

// AllocationSlice is one wedge of the backend's allocation breakdown
// (by sector, asset class or region depending on the requested grouping).
type AllocationSlice struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}
