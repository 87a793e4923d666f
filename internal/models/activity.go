package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType decides how an activity amount is signed for display
type ActivityType string

const (
	ActivityPayment ActivityType = "payment"
	ActivityCharge  ActivityType = "charge"
)

// Activity is a feed item projected from a transaction or a payment
type Activity struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	CardName    string          `json:"card_name"`
	Category    string          `json:"category"`
	Timestamp   time.Time       `json:"timestamp"`
	Amount      decimal.Decimal `json:"amount"`
	Type        ActivityType    `json:"type"`
}
