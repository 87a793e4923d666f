// Package activity projects transactions and payments into a unified feed.
package activity

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Dan9191/card-tracker/internal/models"
)

// FromTransaction projects a transaction. Credits to the card become payment
// items, spend becomes charges.
func FromTransaction(tx models.Transaction, cardName string) models.Activity {
	typ := models.ActivityCharge
	if tx.Amount.IsPositive() {
		typ = models.ActivityPayment
	}
	desc := tx.Description
	if strings.TrimSpace(desc) == "" {
		desc = tx.Merchant
	}
	return models.Activity{
		ID:          fmt.Sprintf("txn-%d", tx.ID),
		Description: desc,
		CardName:    cardName,
		Category:    tx.Category,
		Timestamp:   tx.Date,
		Amount:      tx.Amount,
		Type:        typ,
	}
}

// FromPayment projects a payment
func FromPayment(p models.Payment, cardName string) models.Activity {
	desc := "Payment"
	if p.Method != "" {
		desc = "Payment via " + p.Method
	}
	if p.Status == models.PaymentPending {
		desc += " (pending)"
	}
	return models.Activity{
		ID:          fmt.Sprintf("pmt-%d", p.ID),
		Description: desc,
		CardName:    cardName,
		Category:    "payment",
		Timestamp:   p.Date,
		Amount:      p.Amount,
		Type:        models.ActivityPayment,
	}
}

// Build projects transactions and payments for the given cards into a feed,
// newest first. Failed payments are left out. Card names are looked up by ID.
func Build(cards []models.Card, txs []models.Transaction, payments []models.Payment) []models.Activity {
	names := make(map[int64]string, len(cards))
	for _, c := range cards {
		names[c.ID] = c.Name
	}

	items := make([]models.Activity, 0, len(txs)+len(payments))
	for _, tx := range txs {
		items = append(items, FromTransaction(tx, names[tx.CardID]))
	}
	for _, p := range payments {
		if p.Status == models.PaymentFailed {
			continue
		}
		items = append(items, FromPayment(p, names[p.CardID]))
	}
	return Sort(items)
}

// Sort returns a copy of the feed ordered newest first; equal timestamps keep
// their input order.
func Sort(items []models.Activity) []models.Activity {
	out := slices.Clone(items)
	if out == nil {
		out = []models.Activity{}
	}
	slices.SortStableFunc(out, func(a, b models.Activity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}
