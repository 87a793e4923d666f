// Package transactions produces ordered, filtered views over transaction snapshots.
//
// Views never modify their input: the same slice may back several differently
// sorted views at once.
package transactions

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Kind restricts a view to spend or credits
type Kind string

const (
	KindAll    Kind = ""
	KindDebit  Kind = "debit"
	KindCredit Kind = "credit"
)

// ParseKind validates a kind filter value
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAll, KindDebit, KindCredit:
		return k, nil
	default:
		return KindAll, fmt.Errorf("unsupported transaction kind %q", s)
	}
}

// Filter narrows a view. Zero values disable each criterion.
type Filter struct {
	CardID     int64
	Categories []string // Case-insensitive
	From       *time.Time
	To         *time.Time // Inclusive
	Search     string     // Matches description or merchant, case-insensitive
	Kind       Kind
	MinAmount  *decimal.Decimal // Absolute value
	MaxAmount  *decimal.Decimal // Absolute value
}

// View returns the transactions that pass the filter, ordered by s. Ties keep
// their input order in either direction.
func View(txs []models.Transaction, s Sort, f *Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f == nil || f.match(tx) {
			out = append(out, tx)
		}
	}

	cmp := comparator(s.Field)
	if s.Direction == Ascending {
		slices.SortStableFunc(out, cmp)
	} else {
		slices.SortStableFunc(out, func(a, b models.Transaction) int { return cmp(b, a) })
	}
	return out
}

func comparator(field SortField) func(a, b models.Transaction) int {
	switch field {
	case SortByDescription:
		return func(a, b models.Transaction) int { return strings.Compare(a.Description, b.Description) }
	case SortByCategory:
		return func(a, b models.Transaction) int { return strings.Compare(a.Category, b.Category) }
	case SortByAmount:
		return func(a, b models.Transaction) int { return a.Amount.Abs().Cmp(b.Amount.Abs()) }
	default:
		return func(a, b models.Transaction) int { return a.Date.Compare(b.Date) }
	}
}

func (f *Filter) match(tx models.Transaction) bool {
	if f.CardID != 0 && tx.CardID != f.CardID {
		return false
	}
	if len(f.Categories) > 0 && !slices.ContainsFunc(f.Categories, func(c string) bool {
		return strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(tx.Category))
	}) {
		return false
	}
	if f.From != nil && tx.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && tx.Date.After(*f.To) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(tx.Description), q) && !strings.Contains(strings.ToLower(tx.Merchant), q) {
			return false
		}
	}
	switch f.Kind {
	case KindDebit:
		if !tx.IsDebit() {
			return false
		}
	case KindCredit:
		if !tx.Amount.IsPositive() {
			return false
		}
	}
	abs := tx.Amount.Abs()
	if f.MinAmount != nil && abs.LessThan(f.MinAmount.Abs()) {
		return false
	}
	if f.MaxAmount != nil && abs.GreaterThan(f.MaxAmount.Abs()) {
		return false
	}
	return true
}
