// Package status derives a card's payment urgency from its due date and payment state.
//
// Classification is a pure function of the card, the reference date and the
// thresholds. Nothing here reads the clock.
package status

import (
	"time"

	"github.com/Dan9191/card-tracker/internal/models"
)

const (
	DefaultUrgentDays   = 3
	DefaultUpcomingDays = 14
)

// Thresholds are the day windows used to classify due-date proximity
type Thresholds struct {
	UrgentDays   int
	UpcomingDays int
}

// DefaultThresholds returns the 3 and 14 day windows
func DefaultThresholds() Thresholds {
	return Thresholds{UrgentDays: DefaultUrgentDays, UpcomingDays: DefaultUpcomingDays}
}

// Normalize replaces negative windows with defaults and keeps upcoming >= urgent
func (t Thresholds) Normalize() Thresholds {
	if t.UrgentDays < 0 {
		t.UrgentDays = DefaultUrgentDays
	}
	if t.UpcomingDays < 0 {
		t.UpcomingDays = DefaultUpcomingDays
	}
	if t.UpcomingDays < t.UrgentDays {
		t.UpcomingDays = t.UrgentDays
	}
	return t
}

// Classification is the full result of evaluating a card
type Classification struct {
	Status       models.CardStatus
	DueDate      *time.Time // Resolved due date, nil when absent
	DaysUntilDue *int       // Negative when the due date has passed
	Overdue      bool
}

// Classify returns the status of a card at the reference date
func Classify(card models.Card, ref time.Time, th Thresholds) models.CardStatus {
	return Evaluate(card, ref, th).Status
}

// Evaluate classifies a card and reports the due date it was measured against
func Evaluate(card models.Card, ref time.Time, th Thresholds) Classification {
	th = th.Normalize()

	due := ResolveDueDate(card, ref)
	c := Classification{Status: models.StatusUnknown, DueDate: due}
	if due != nil {
		days := DaysBetween(ref, *due)
		c.DaysUntilDue = &days
	}

	if card.PaidThisCycle || !card.CurrentBalance.IsPositive() {
		c.Status = models.StatusPaid
		return c
	}
	if c.DaysUntilDue == nil {
		return c
	}

	days := *c.DaysUntilDue
	switch {
	case days <= th.UrgentDays:
		c.Status = models.StatusUrgent
		c.Overdue = days < 0
	case days <= th.UpcomingDays:
		c.Status = models.StatusUpcoming
	}
	return c
}

// ResolveDueDate returns the card's absolute due date, or the next occurrence of
// its due day on or after ref. Nil when neither is usable.
func ResolveDueDate(card models.Card, ref time.Time) *time.Time {
	if card.DueDate != nil {
		if card.DueDate.IsZero() {
			return nil
		}
		d := dateOf(*card.DueDate)
		return &d
	}
	if card.DueDay < 1 || card.DueDay > 31 {
		return nil
	}

	today := dateOf(ref)
	due := dayInMonth(today.Year(), today.Month(), card.DueDay)
	if due.Before(today) {
		due = dayInMonth(today.Year(), today.Month()+1, card.DueDay)
	}
	return &due
}

// DaysBetween counts whole calendar days from ref to due
func DaysBetween(ref, due time.Time) int {
	return int(dateOf(due).Sub(dateOf(ref)).Hours() / 24)
}

// dateOf keeps the calendar date of t in its own location, as midnight UTC
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayInMonth clamps day to the last day of the month
func dayInMonth(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
