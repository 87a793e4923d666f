package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Network is the card payment network
type Network string

const (
	NetworkVisa       Network = "visa"
	NetworkMastercard Network = "mastercard"
	NetworkAmex       Network = "amex"
	NetworkDiscover   Network = "discover"
)

// ParseNetwork normalizes a network name, returning "" for unknown values
func ParseNetwork(s string) Network {
	switch n := Network(strings.ToLower(strings.TrimSpace(s))); n {
	case NetworkVisa, NetworkMastercard, NetworkAmex, NetworkDiscover:
		return n
	case "american express":
		return NetworkAmex
	default:
		return ""
	}
}

// CardStatus is the derived payment urgency of a card
type CardStatus string

const (
	StatusUrgent   CardStatus = "urgent"
	StatusUpcoming CardStatus = "upcoming"
	StatusPaid     CardStatus = "paid"
	StatusUnknown  CardStatus = "unknown"
)

// Card represents a credit card account snapshot
type Card struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	LastFour       string          `json:"last_four"`
	CardholderName string          `json:"cardholder_name"`
	Network        Network         `json:"network"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"` // Amount owed
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	DueDay         int             `json:"due_day,omitempty"` // Day of month, used when DueDate is nil
	BillingDate    *time.Time      `json:"billing_date,omitempty"`
	InterestRate   decimal.Decimal `json:"interest_rate"` // Percent
	AnnualFee      decimal.Decimal `json:"annual_fee"`
	PaidThisCycle  bool            `json:"paid_this_cycle"`
}
