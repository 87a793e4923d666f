package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Repository reads card snapshots from the database
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const cardColumns = `
		id, name, last_four, cardholder_name, network, credit_limit, current_balance,
		minimum_payment, due_date, due_day, billing_date, interest_rate, annual_fee, paid_this_cycle`

// ListCards returns all cards ordered by name
func (r *Repository) ListCards(ctx context.Context) ([]models.Card, error) {
	query := `SELECT` + cardColumns + `
		FROM cards.cards
		ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// GetCard retrieves a card by ID
func (r *Repository) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT` + cardColumns + `
		FROM cards.cards
		WHERE id = $1`
	card, err := scanCard(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ListTransactions returns transactions in insertion order. cardID 0 lists all cards.
func (r *Repository) ListTransactions(ctx context.Context, cardID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, card_id, posted_at, description, merchant, category, amount
		FROM cards.transactions
		WHERE ($1 = 0 OR card_id = $1)
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var (
			tx       models.Transaction
			postedAt sql.NullTime
			desc     sql.NullString
			merchant sql.NullString
			category sql.NullString
			amount   decimal.NullDecimal
		)
		if err := rows.Scan(&tx.ID, &tx.CardID, &postedAt, &desc, &merchant, &category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Date = postedAt.Time
		tx.Description = desc.String
		tx.Merchant = merchant.String
		tx.Category = category.String
		tx.Amount = orZero(amount)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// ListPayments returns a card's payments, newest first
func (r *Repository) ListPayments(ctx context.Context, cardID int64) ([]models.Payment, error) {
	query := `
		SELECT id, card_id, paid_at, amount, method, status, confirmation_code
		FROM cards.payments
		WHERE card_id = $1
		ORDER BY paid_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var (
			p      models.Payment
			paidAt sql.NullTime
			amount decimal.NullDecimal
			method sql.NullString
			status sql.NullString
			code   sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.CardID, &paidAt, &amount, &method, &status, &code); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Date = paidAt.Time
		p.Amount = orZero(amount)
		p.Method = method.String
		p.Status = parsePaymentStatus(status.String)
		p.ConfirmationCode = code.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// ListActivity returns the activity feed since the given time, projected the
// same way as package activity. Failed payments are excluded; ordering is left
// to the caller.
func (r *Repository) ListActivity(ctx context.Context, since time.Time) ([]models.Activity, error) {
	query := `
		SELECT 'txn-' || t.id, COALESCE(NULLIF(t.description, ''), t.merchant), c.name, t.category, t.posted_at, t.amount,
			CASE WHEN t.amount > 0 THEN 'payment' ELSE 'charge' END
		FROM cards.transactions t
		JOIN cards.cards c ON c.id = t.card_id
		WHERE t.posted_at >= $1
		UNION ALL
		SELECT 'pmt-' || p.id,
			COALESCE('Payment via ' || NULLIF(p.method, ''), 'Payment') ||
				CASE WHEN p.status = 'pending' THEN ' (pending)' ELSE '' END,
			c.name, 'payment', p.paid_at, p.amount, 'payment'
		FROM cards.payments p
		JOIN cards.cards c ON c.id = p.card_id
		WHERE p.paid_at >= $1 AND p.status <> 'failed'`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	items := []models.Activity{}
	for rows.Next() {
		var (
			a        models.Activity
			desc     sql.NullString
			category sql.NullString
			ts       sql.NullTime
			amount   decimal.NullDecimal
			typ      string
		)
		if err := rows.Scan(&a.ID, &desc, &a.CardName, &category, &ts, &amount, &typ); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Description = desc.String
		a.Category = category.String
		a.Timestamp = ts.Time
		a.Amount = orZero(amount)
		a.Type = models.ActivityType(typ)
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var (
		card         models.Card
		lastFour     sql.NullString
		holder       sql.NullString
		network      sql.NullString
		limit        decimal.NullDecimal
		balance      decimal.NullDecimal
		minimum      decimal.NullDecimal
		dueDate      sql.NullTime
		dueDay       sql.NullInt64
		billingDate  sql.NullTime
		interestRate decimal.NullDecimal
		annualFee    decimal.NullDecimal
		paid         sql.NullBool
	)
	err := row.Scan(&card.ID, &card.Name, &lastFour, &holder, &network, &limit, &balance,
		&minimum, &dueDate, &dueDay, &billingDate, &interestRate, &annualFee, &paid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}

	card.LastFour = lastFour.String
	card.CardholderName = holder.String
	card.Network = models.ParseNetwork(network.String)
	card.CreditLimit = orZero(limit)
	card.CurrentBalance = orZero(balance)
	card.MinimumPayment = orZero(minimum)
	card.InterestRate = orZero(interestRate)
	card.AnnualFee = orZero(annualFee)
	card.PaidThisCycle = paid.Bool
	if dueDate.Valid {
		d := dueDate.Time
		card.DueDate = &d
	}
	if dueDay.Valid {
		card.DueDay = int(dueDay.Int64)
	}
	if billingDate.Valid {
		d := billingDate.Time
		card.BillingDate = &d
	}
	return &card, nil
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

func parsePaymentStatus(s string) models.PaymentStatus {
	switch st := models.PaymentStatus(s); st {
	case models.PaymentCompleted, models.PaymentPending, models.PaymentFailed:
		return st
	default:
		return models.PaymentPending
	}
}
