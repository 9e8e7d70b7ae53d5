package models

import (
	"fmt"
	"strings"
	"time"
)

// Transaction types accepted by the backend.
const (
	TxBuy        = "buy"
	TxSell       = "sell"
	TxDividend   = "dividend"
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
)

// Transaction is a recorded portfolio event as stored by the backend.
type Transaction struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolio_id"`
	Symbol      string    `json:"symbol,omitempty"`
	Type        string    `json:"type"`
	TradeDate   string    `json:"trade_date"` // YYYY-MM-DD
	Units       float64   `json:"units,omitempty"`
	Price       float64   `json:"price,omitempty"`
	Fees        float64   `json:"fees,omitempty"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionInput is the payload for transaction entry. Validation mirrors
// the dashboard's entry form: security trades need a symbol and positive
// units, cash movements need a non-zero amount.
type TransactionInput struct {
	Symbol    string  `json:"symbol,omitempty"`
	Type      string  `json:"type"`
	TradeDate string  `json:"trade_date"`
	Units     float64 `json:"units,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Fees      float64 `json:"fees,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// IsSecurityType reports whether the type involves a traded security.
func IsSecurityType(txType string) bool {
	switch txType {
	case TxBuy, TxSell, TxDividend:
		return true
	}
	return false
}

// Validate checks a transaction input before it is sent to the backend.
func (t *TransactionInput) Validate() error {
	switch t.Type {
	case TxBuy, TxSell, TxDividend, TxDeposit, TxWithdrawal:
	case "":
		return fmt.Errorf("transaction type is required")
	default:
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}

	if t.TradeDate == "" {
		return fmt.Errorf("trade_date is required")
	}
	if _, err := time.Parse("2006-01-02", t.TradeDate); err != nil {
		return fmt.Errorf("trade_date must be YYYY-MM-DD: %w", err)
	}

	if IsSecurityType(t.Type) {
		if strings.TrimSpace(t.Symbol) == "" {
			return fmt.Errorf("symbol is required for %s transactions", t.Type)
		}
	}

	switch t.Type {
	case TxBuy, TxSell:
		if t.Units <= 0 {
			return fmt.Errorf("units must be positive for %s transactions", t.Type)
		}
		if t.Price < 0 {
			return fmt.Errorf("price cannot be negative")
		}
	case TxDividend, TxDeposit, TxWithdrawal:
		if t.Amount == 0 {
			return fmt.Errorf("amount is required for %s transactions", t.Type)
		}
	}

	if t.Fees < 0 {
		return fmt.Errorf("fees cannot be negative")
	}

	return nil
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Symbol string
	Type   string
	From   string // YYYY-MM-DD inclusive
	To     string // YYYY-MM-DD inclusive
	Limit  int
}
