package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a card transaction.
// Amount is negative for spend and positive for credits and refunds.
type Transaction struct {
	ID          int64           `json:"id"`
	CardID      int64           `json:"card_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Merchant    string          `json:"merchant,omitempty"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

// IsDebit reports whether the transaction is spend
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}
