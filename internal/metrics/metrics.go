// Package metrics computes derived card figures and dashboard aggregates.
package metrics

import (
	"time"

	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/Dan9191/card-tracker/internal/status"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AvailableCredit returns the credit limit minus the balance. It goes negative
// when the card is over its limit.
func AvailableCredit(card models.Card) decimal.Decimal {
	return card.CreditLimit.Sub(card.CurrentBalance)
}

// Utilization returns the balance as a percentage of the limit, rounded to one
// decimal place. Nil when the limit is zero or negative.
func Utilization(card models.Card) *decimal.Decimal {
	return ratio(card.CurrentBalance, card.CreditLimit)
}

func ratio(balance, limit decimal.Decimal) *decimal.Decimal {
	if !limit.IsPositive() {
		return nil
	}
	pct := balance.Mul(hundred).DivRound(limit, 8).Round(1)
	return &pct
}

// Aggregate summarizes a card collection. Counts come from status.Evaluate so
// they always agree with the per-card badges.
func Aggregate(cards []models.Card, ref time.Time, th status.Thresholds) models.DashboardSummary {
	s := models.DashboardSummary{
		TotalCards:           len(cards),
		TotalBalance:         decimal.Zero,
		TotalCreditLimit:     decimal.Zero,
		TotalAvailableCredit: decimal.Zero,
		TotalMinimumDue:      decimal.Zero,
	}

	for _, card := range cards {
		c := status.Evaluate(card, ref, th)
		switch c.Status {
		case models.StatusUrgent:
			s.UrgentCount++
		case models.StatusUpcoming:
			s.UpcomingCount++
		case models.StatusPaid:
			s.PaidCount++
		default:
			s.UnknownCount++
		}
		if c.Overdue {
			s.OverdueCount++
		}
		if c.Status != models.StatusPaid {
			s.TotalMinimumDue = s.TotalMinimumDue.Add(card.MinimumPayment)
		}

		s.TotalBalance = s.TotalBalance.Add(card.CurrentBalance)
		s.TotalCreditLimit = s.TotalCreditLimit.Add(card.CreditLimit)
	}

	s.TotalAvailableCredit = s.TotalCreditLimit.Sub(s.TotalBalance)
	s.Utilization = ratio(s.TotalBalance, s.TotalCreditLimit)
	return s
}
