package models

import (
	"github.com/shopspring/decimal"
)

// CardView is a card with its derived state and display strings
type CardView struct {
	Card
	Status          CardStatus       `json:"status"`
	DaysUntilDue    *int             `json:"days_until_due"`
	Overdue         bool             `json:"overdue"`
	AvailableCredit decimal.Decimal  `json:"available_credit"`
	Utilization     *decimal.Decimal `json:"utilization"` // Percent, null when the limit is zero
	Label           string           `json:"label"`
	Display         CardDisplay      `json:"display"`
}

// CardDisplay holds locale-formatted card figures
type CardDisplay struct {
	Network         string `json:"network"`
	CreditLimit     string `json:"credit_limit"`
	CurrentBalance  string `json:"current_balance"`
	AvailableCredit string `json:"available_credit"`
	MinimumPayment  string `json:"minimum_payment"`
	Utilization     string `json:"utilization"`
	DueDate         string `json:"due_date"`
	InterestRate    string `json:"interest_rate"`
	AnnualFee       string `json:"annual_fee"`
}

// DashboardSummary represents aggregate card metrics
type DashboardSummary struct {
	TotalCards           int              `json:"total_cards"`
	UrgentCount          int              `json:"urgent_count"`
	UpcomingCount        int              `json:"upcoming_count"`
	PaidCount            int              `json:"paid_count"`
	UnknownCount         int              `json:"unknown_count"`
	OverdueCount         int              `json:"overdue_count"`
	TotalBalance         decimal.Decimal  `json:"total_balance"`
	TotalCreditLimit     decimal.Decimal  `json:"total_credit_limit"`
	TotalAvailableCredit decimal.Decimal  `json:"total_available_credit"`
	TotalMinimumDue      decimal.Decimal  `json:"total_minimum_due"`
	Utilization          *decimal.Decimal `json:"utilization"`
}

// Dashboard is the top-level dashboard payload
type Dashboard struct {
	AsOf    string           `json:"as_of"` // Format: YYYY-MM-DD
	Cards   []CardView       `json:"cards"`
	Summary DashboardSummary `json:"summary"`
	Display SummaryDisplay   `json:"display"`
}

// SummaryDisplay holds locale-formatted summary figures
type SummaryDisplay struct {
	TotalBalance         string `json:"total_balance"`
	TotalCreditLimit     string `json:"total_credit_limit"`
	TotalAvailableCredit string `json:"total_available_credit"`
	TotalMinimumDue      string `json:"total_minimum_due"`
	Utilization          string `json:"utilization"`
}

// TransactionView is a transaction decorated for display
type TransactionView struct {
	Transaction
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	DisplayAmount string `json:"display_amount"`
	DisplayDate   string `json:"display_date"`
}

// PaymentView is a payment decorated for display
type PaymentView struct {
	Payment
	DisplayAmount string `json:"display_amount"`
	DisplayDate   string `json:"display_date"`
}

// ActivityView is a feed item decorated for display
type ActivityView struct {
	Activity
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	DisplayAmount string `json:"display_amount"`
	DisplayTime   string `json:"display_time"`
}

// CardDetail is the per-card detail payload
type CardDetail struct {
	AsOf         string            `json:"as_of"`
	Card         CardView          `json:"card"`
	Transactions []TransactionView `json:"transactions"`
	Payments     []PaymentView     `json:"payments"`
	Activity     []ActivityView    `json:"activity"`
}

// Reminder describes a card that needs a payment reminder
type Reminder struct {
	CardID         int64      `json:"card_id"`
	CardLabel      string     `json:"card_label"`
	Status         CardStatus `json:"status"`
	Overdue        bool       `json:"overdue"`
	DaysUntilDue   int        `json:"days_until_due"`
	DueDate        string     `json:"due_date"`
	MinimumPayment string     `json:"minimum_payment"`
	CurrentBalance string     `json:"current_balance"`
}
