package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the processing state of a payment
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment represents a payment made towards a card balance
type Payment struct {
	ID               int64           `json:"id"`
	CardID           int64           `json:"card_id"`
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Status           PaymentStatus   `json:"status"`
	ConfirmationCode string          `json:"confirmation_code"`
}
