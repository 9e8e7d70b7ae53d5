package models

import "time"

// Insight is a backend-curated market insight item.
type Insight struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"` // market, sector, holding
	Symbols     []string  `json:"symbols,omitempty"`
	Sentiment   string    `json:"sentiment,omitempty"` // positive, neutral, negative
	PublishedAt time.Time `json:"published_at"`
}

// MarketMover is a notable price move reported by the backend.
type MarketMover struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// Briefing is a narrated digest of the current insights and movers.
type Briefing struct {
	GeneratedAt time.Time `json:"generated_at"`
	Model       string    `json:"model,omitempty"`
	Text        string    `json:"text"`
}
