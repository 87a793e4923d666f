package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Dan9191/card-tracker/internal/activity"
	"github.com/Dan9191/card-tracker/internal/category"
	"github.com/Dan9191/card-tracker/internal/config"
	"github.com/Dan9191/card-tracker/internal/format"
	"github.com/Dan9191/card-tracker/internal/integrations/ofx"
	"github.com/Dan9191/card-tracker/internal/metrics"
	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/Dan9191/card-tracker/internal/repository"
	"github.com/Dan9191/card-tracker/internal/status"
	"github.com/Dan9191/card-tracker/internal/transactions"
	"github.com/Dan9191/card-tracker/internal/utils"
	"github.com/sirupsen/logrus"
)

// ErrCardNotFound is returned when a card ID does not exist
var ErrCardNotFound = errors.New("card not found")

// Store provides card snapshots
type Store interface {
	ListCards(ctx context.Context) ([]models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	ListTransactions(ctx context.Context, cardID int64) ([]models.Transaction, error)
	ListPayments(ctx context.Context, cardID int64) ([]models.Payment, error)
	ListActivity(ctx context.Context, since time.Time) ([]models.Activity, error)
}

// TransactionQuery selects a transaction view
type TransactionQuery struct {
	CardID int64 // 0 for all cards
	Sort   transactions.Sort
	Filter transactions.Filter
}

// Service handles business logic
type Service struct {
	repo       Store
	log        *logrus.Logger
	config     *config.Config
	display    *format.Formatter
	thresholds status.Thresholds
	parser     *ofx.Parser
}

// NewService initializes a new service
func NewService(repo Store, log *logrus.Logger, cfg *config.Config) (*Service, error) {
	f, err := format.New(format.Options{Locale: cfg.Locale, Currency: cfg.Currency})
	if err != nil {
		return nil, fmt.Errorf("failed to configure formatting: %w", err)
	}
	return &Service{
		repo:       repo,
		log:        log,
		config:     cfg,
		display:    f,
		thresholds: status.Thresholds{UrgentDays: cfg.UrgentDays, UpcomingDays: cfg.UpcomingDays}.Normalize(),
		parser:     ofx.NewParser(log),
	}, nil
}

// Dashboard builds the per-card views and aggregate summary at the reference date
func (s *Service) Dashboard(ctx context.Context, ref time.Time) (*models.Dashboard, error) {
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.CardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, s.cardView(card, ref))
	}

	summary := metrics.Aggregate(cards, ref, s.thresholds)
	s.log.Debugf("Dashboard built for %d cards: %d urgent, %d upcoming, %d overdue",
		summary.TotalCards, summary.UrgentCount, summary.UpcomingCount, summary.OverdueCount)

	return &models.Dashboard{
		AsOf:    ref.Format("2006-01-02"),
		Cards:   views,
		Summary: summary,
		Display: models.SummaryDisplay{
			TotalBalance:         s.display.Money(summary.TotalBalance),
			TotalCreditLimit:     s.display.Money(summary.TotalCreditLimit),
			TotalAvailableCredit: s.display.Money(summary.TotalAvailableCredit),
			TotalMinimumDue:      s.display.Money(summary.TotalMinimumDue),
			Utilization:          s.display.Percent(summary.Utilization),
		},
	}, nil
}

// CardDetail builds the detail view of one card with its sorted transactions,
// payments and activity
func (s *Service) CardDetail(ctx context.Context, id int64, ref time.Time, sort transactions.Sort) (*models.CardDetail, error) {
	card, err := s.getCard(ctx, id)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.ListTransactions(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	paymentViews := make([]models.PaymentView, 0, len(payments))
	for _, p := range payments {
		paymentViews = append(paymentViews, models.PaymentView{
			Payment:       p,
			DisplayAmount: s.display.Money(p.Amount),
			DisplayDate:   s.display.Date(p.Date),
		})
	}

	return &models.CardDetail{
		AsOf:         ref.Format("2006-01-02"),
		Card:         s.cardView(*card, ref),
		Transactions: s.transactionViews(transactions.View(txs, sort, nil)),
		Payments:     paymentViews,
		Activity:     s.activityViews(activity.Build([]models.Card{*card}, txs, payments)),
	}, nil
}

// Transactions returns a sorted, filtered transaction view
func (s *Service) Transactions(ctx context.Context, q TransactionQuery) ([]models.TransactionView, error) {
	if q.CardID != 0 {
		if _, err := s.getCard(ctx, q.CardID); err != nil {
			return nil, err
		}
	}
	txs, err := s.repo.ListTransactions(ctx, q.CardID)
	if err != nil {
		return nil, err
	}
	q.Filter.CardID = q.CardID
	return s.transactionViews(transactions.View(txs, q.Sort, &q.Filter)), nil
}

// Activity returns the global feed for the configured window ending at ref
func (s *Service) Activity(ctx context.Context, ref time.Time) ([]models.ActivityView, error) {
	since := ref.AddDate(0, 0, -s.config.ActivityWindowDays)
	items, err := s.repo.ListActivity(ctx, since)
	if err != nil {
		return nil, err
	}
	return s.activityViews(activity.Sort(items)), nil
}

// DueReminders lists cards that are urgent or upcoming at ref, most pressing first
func (s *Service) DueReminders(ctx context.Context, ref time.Time) ([]models.Reminder, error) {
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	reminders := []models.Reminder{}
	for _, card := range cards {
		c := status.Evaluate(card, ref, s.thresholds)
		if c.Status != models.StatusUrgent && c.Status != models.StatusUpcoming {
			continue
		}
		reminders = append(reminders, models.Reminder{
			CardID:         card.ID,
			CardLabel:      utils.CardLabel(card),
			Status:         c.Status,
			Overdue:        c.Overdue,
			DaysUntilDue:   *c.DaysUntilDue,
			DueDate:        s.display.DatePtr(c.DueDate),
			MinimumPayment: s.display.Money(card.MinimumPayment),
			CurrentBalance: s.display.Money(card.CurrentBalance),
		})
	}
	sortReminders(reminders)
	return reminders, nil
}

// PreviewStatement parses an OFX statement for a card and returns its
// transactions through the same view engine, without storing anything
func (s *Service) PreviewStatement(ctx context.Context, cardID int64, r io.Reader, sort transactions.Sort) (*ofx.Statement, []models.TransactionView, error) {
	if _, err := s.getCard(ctx, cardID); err != nil {
		return nil, nil, err
	}
	stmt, err := s.parser.Parse(r, cardID)
	if err != nil {
		return nil, nil, err
	}
	return stmt, s.transactionViews(transactions.View(stmt.Transactions, sort, nil)), nil
}

func (s *Service) getCard(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.repo.GetCard(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) cardView(card models.Card, ref time.Time) models.CardView {
	c := status.Evaluate(card, ref, s.thresholds)
	available := metrics.AvailableCredit(card)
	utilization := metrics.Utilization(card)

	return models.CardView{
		Card:            card,
		Status:          c.Status,
		DaysUntilDue:    c.DaysUntilDue,
		Overdue:         c.Overdue,
		AvailableCredit: available,
		Utilization:     utilization,
		Label:           utils.CardLabel(card),
		Display: models.CardDisplay{
			Network:         utils.NetworkName(card.Network),
			CreditLimit:     s.display.Money(card.CreditLimit),
			CurrentBalance:  s.display.Money(card.CurrentBalance),
			AvailableCredit: s.display.Money(available),
			MinimumPayment:  s.display.Money(card.MinimumPayment),
			Utilization:     s.display.Percent(utilization),
			DueDate:         s.display.DatePtr(c.DueDate),
			InterestRate:    s.display.Rate(card.InterestRate),
			AnnualFee:       s.display.Money(card.AnnualFee),
		},
	}
}

func (s *Service) transactionViews(txs []models.Transaction) []models.TransactionView {
	views := make([]models.TransactionView, 0, len(txs))
	for _, tx := range txs {
		style := category.Lookup(tx.Category)
		views = append(views, models.TransactionView{
			Transaction:   tx,
			Icon:          string(style.Icon),
			Color:         string(style.Color),
			DisplayAmount: s.display.Money(tx.Amount),
			DisplayDate:   s.display.Date(tx.Date),
		})
	}
	return views
}

func (s *Service) activityViews(items []models.Activity) []models.ActivityView {
	views := make([]models.ActivityView, 0, len(items))
	for _, a := range items {
		style := category.Lookup(a.Category)
		views = append(views, models.ActivityView{
			Activity:      a,
			Icon:          string(style.Icon),
			Color:         string(style.Color),
			DisplayAmount: s.display.ActivityAmount(a),
			DisplayTime:   s.display.DateTime(a.Timestamp),
		})
	}
	return views
}
