package service

import (
	"slices"

	"github.com/Dan9191/card-tracker/internal/models"
)

// sortReminders orders by days until due, soonest (most overdue) first
func sortReminders(r []models.Reminder) {
	slices.SortStableFunc(r, func(a, b models.Reminder) int {
		return a.DaysUntilDue - b.DaysUntilDue
	})
}
