package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/card-tracker/internal/config"
	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/Dan9191/card-tracker/internal/repository"
	"github.com/Dan9191/card-tracker/internal/transactions"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type storeStub struct {
	cards        []models.Card
	transactions []models.Transaction
	payments     []models.Payment
	activity     []models.Activity
	err          error
	since        time.Time
}

func (s *storeStub) ListCards(ctx context.Context) ([]models.Card, error) {
	return s.cards, s.err
}

func (s *storeStub) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.cards {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *storeStub) ListTransactions(ctx context.Context, cardID int64) ([]models.Transaction, error) {
	out := []models.Transaction{}
	for _, tx := range s.transactions {
		if cardID == 0 || tx.CardID == cardID {
			out = append(out, tx)
		}
	}
	return out, s.err
}

func (s *storeStub) ListPayments(ctx context.Context, cardID int64) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range s.payments {
		if p.CardID == cardID {
			out = append(out, p)
		}
	}
	return out, s.err
}

func (s *storeStub) ListActivity(ctx context.Context, since time.Time) ([]models.Activity, error) {
	s.since = since
	return s.activity, s.err
}

var ref = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func dueIn(days int) *time.Time {
	d := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &d
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore() *storeStub {
	return &storeStub{
		cards: []models.Card{
			{ID: 1, Name: "Sapphire", LastFour: "1234", Network: models.NetworkVisa, CreditLimit: money("1000"), CurrentBalance: money("1200"), MinimumPayment: money("35"), DueDate: dueIn(2), InterestRate: money("24.99")},
			{ID: 2, Name: "Everyday", LastFour: "9876", Network: models.NetworkMastercard, CreditLimit: money("5000"), CurrentBalance: money("310.45"), MinimumPayment: money("25"), DueDate: dueIn(10)},
			{ID: 3, Name: "Store Card", LastFour: "5555", Network: models.NetworkDiscover, CreditLimit: money("0"), CurrentBalance: money("40"), MinimumPayment: money("10")},
			{ID: 4, Name: "Old Amex", LastFour: "0001", Network: models.NetworkAmex, CreditLimit: money("2000"), CurrentBalance: money("100"), MinimumPayment: money("20"), DueDate: dueIn(-1)},
		},
		transactions: []models.Transaction{
			{ID: 1, CardID: 2, Date: ref.AddDate(0, 0, -3), Description: "Whole Foods", Category: "Groceries", Amount: money("-82.10")},
			{ID: 2, CardID: 2, Date: ref.AddDate(0, 0, -1), Description: "Shell", Category: "gas", Amount: money("-40")},
			{ID: 3, CardID: 1, Date: ref.AddDate(0, 0, -2), Description: "Vet", Category: "Pet Supplies", Amount: money("-120")},
			{ID: 4, CardID: 2, Date: ref.AddDate(0, 0, -5), Description: "Refund", Category: "Shopping", Amount: money("50")},
		},
		payments: []models.Payment{
			{ID: 1, CardID: 2, Date: ref.AddDate(0, 0, -2), Amount: money("200"), Method: "ACH", Status: models.PaymentCompleted},
			{ID: 2, CardID: 2, Date: ref.AddDate(0, 0, -4), Amount: money("75"), Method: "Debit card", Status: models.PaymentFailed},
		},
	}
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc, err := NewService(store, log, &config.Config{
		Locale: "en-US", Currency: "USD", UrgentDays: 3, UpcomingDays: 14, ActivityWindowDays: 30,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestDashboardViewsAgreeWithSummary(t *testing.T) {
	svc := newTestService(t, newStore())

	d, err := svc.Dashboard(context.Background(), ref)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}

	counts := map[models.CardStatus]int{}
	overdue := 0
	for _, v := range d.Cards {
		counts[v.Status]++
		if v.Overdue {
			overdue++
		}
	}
	if d.Summary.UrgentCount != counts[models.StatusUrgent] || d.Summary.UpcomingCount != counts[models.StatusUpcoming] {
		t.Fatalf("summary %+v disagrees with badges %v", d.Summary, counts)
	}
	if d.Summary.OverdueCount != overdue || overdue != 1 {
		t.Fatalf("expected 1 overdue card, summary says %d, badges say %d", d.Summary.OverdueCount, overdue)
	}
	if d.AsOf != "2026-10-19" {
		t.Fatalf("unexpected as_of %q", d.AsOf)
	}
}

func TestDashboardCardFigures(t *testing.T) {
	svc := newTestService(t, newStore())

	d, err := svc.Dashboard(context.Background(), ref)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}

	over := d.Cards[0]
	if over.Status != models.StatusUrgent {
		t.Fatalf("expected urgent, got %q", over.Status)
	}
	if !over.AvailableCredit.Equal(money("-200")) || over.Display.AvailableCredit != "-$200.00" {
		t.Fatalf("unexpected available credit %s / %q", over.AvailableCredit, over.Display.AvailableCredit)
	}
	if over.Display.Utilization != "120.0%" {
		t.Fatalf("unexpected utilization %q", over.Display.Utilization)
	}
	if over.Label != "Sapphire (Visa •••• 1234)" {
		t.Fatalf("unexpected label %q", over.Label)
	}

	noLimit := d.Cards[2]
	if noLimit.Utilization != nil || noLimit.Display.Utilization != "N/A" {
		t.Fatalf("expected undefined utilization, got %v / %q", noLimit.Utilization, noLimit.Display.Utilization)
	}
	if noLimit.Status != models.StatusUnknown || noLimit.Display.DueDate != "N/A" {
		t.Fatalf("expected unknown status without due date, got %q / %q", noLimit.Status, noLimit.Display.DueDate)
	}
}

func TestDashboardStoreError(t *testing.T) {
	boom := errors.New("db down")
	svc := newTestService(t, &storeStub{err: boom})
	if _, err := svc.Dashboard(context.Background(), ref); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestCardDetail(t *testing.T) {
	svc := newTestService(t, newStore())

	detail, err := svc.CardDetail(context.Background(), 2, ref, transactions.Sort{Field: transactions.SortByAmount, Direction: transactions.Descending})
	if err != nil {
		t.Fatalf("CardDetail returned error: %v", err)
	}
	if detail.Card.Status != models.StatusUpcoming {
		t.Fatalf("expected upcoming, got %q", detail.Card.Status)
	}

	var gotIDs []int64
	for _, tx := range detail.Transactions {
		gotIDs = append(gotIDs, tx.ID)
	}
	if len(gotIDs) != 3 || gotIDs[0] != 1 || gotIDs[1] != 4 || gotIDs[2] != 2 {
		t.Fatalf("expected amount-desc order [1 4 2], got %v", gotIDs)
	}
	if detail.Transactions[0].Icon != "shopping-cart" || detail.Transactions[0].DisplayAmount != "-$82.10" {
		t.Fatalf("unexpected transaction view %+v", detail.Transactions[0])
	}

	if len(detail.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(detail.Payments))
	}
	// failed payment stays in the payment list but not in the feed
	if len(detail.Activity) != 4 {
		t.Fatalf("expected 4 activity items, got %d", len(detail.Activity))
	}
	if detail.Activity[0].ID != "txn-2" || detail.Activity[1].DisplayAmount != "+$200.00" {
		t.Fatalf("unexpected activity order %+v", detail.Activity[:2])
	}
}

func TestCardDetailNotFound(t *testing.T) {
	svc := newTestService(t, newStore())
	_, err := svc.CardDetail(context.Background(), 99, ref, transactions.DefaultSort())
	if !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestTransactionsAcrossCards(t *testing.T) {
	svc := newTestService(t, newStore())

	views, err := svc.Transactions(context.Background(), TransactionQuery{
		Sort:   transactions.DefaultSort(),
		Filter: transactions.Filter{Kind: transactions.KindDebit},
	})
	if err != nil {
		t.Fatalf("Transactions returned error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 debits, got %d", len(views))
	}
	if views[0].ID != 2 {
		t.Fatalf("expected most recent first, got %d", views[0].ID)
	}
	if views[1].Icon != "circle-dollar" {
		t.Fatalf("expected other icon for Pet Supplies, got %q", views[1].Icon)
	}
}

func TestTransactionsUnknownCard(t *testing.T) {
	svc := newTestService(t, newStore())
	_, err := svc.Transactions(context.Background(), TransactionQuery{CardID: 42, Sort: transactions.DefaultSort()})
	if !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestActivityWindow(t *testing.T) {
	store := newStore()
	store.activity = []models.Activity{
		{ID: "txn-1", Timestamp: ref.AddDate(0, 0, -3), Type: models.ActivityCharge, Amount: money("-82.10"), Category: "groceries"},
		{ID: "pmt-1", Timestamp: ref.AddDate(0, 0, -1), Type: models.ActivityPayment, Amount: money("200"), Category: "payment"},
	}
	svc := newTestService(t, store)

	feed, err := svc.Activity(context.Background(), ref)
	if err != nil {
		t.Fatalf("Activity returned error: %v", err)
	}
	if !store.since.Equal(ref.AddDate(0, 0, -30)) {
		t.Fatalf("expected 30 day window, got since %v", store.since)
	}
	if feed[0].ID != "pmt-1" || feed[0].DisplayAmount != "+$200.00" {
		t.Fatalf("unexpected first item %+v", feed[0])
	}
	if feed[1].DisplayAmount != "-$82.10" || feed[1].Icon != "shopping-cart" {
		t.Fatalf("unexpected second item %+v", feed[1])
	}
}

func TestDueReminders(t *testing.T) {
	svc := newTestService(t, newStore())

	reminders, err := svc.DueReminders(context.Background(), ref)
	if err != nil {
		t.Fatalf("DueReminders returned error: %v", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(reminders))
	}
	if reminders[0].CardID != 4 || !reminders[0].Overdue {
		t.Fatalf("expected overdue card first, got %+v", reminders[0])
	}
	if reminders[1].CardID != 1 || reminders[2].CardID != 2 {
		t.Fatalf("unexpected reminder order %+v", reminders)
	}
	if reminders[2].DueDate != "Oct 29, 2026" || reminders[2].MinimumPayment != "$25.00" {
		t.Fatalf("unexpected formatting %+v", reminders[2])
	}
}

const ofxDoc = `<OFX><CREDITCARDMSGSRSV1><CCSTMTTRNRS><CCSTMTRS>
<CURDEF>USD</CURDEF>
<BANKTRANLIST>
<STMTTRN><TRNTYPE>DEBIT</TRNTYPE><DTPOSTED>20261001</DTPOSTED><TRNAMT>-10.00</TRNAMT><NAME>A</NAME></STMTTRN>
<STMTTRN><TRNTYPE>DEBIT</TRNTYPE><DTPOSTED>20261005</DTPOSTED><TRNAMT>-99.00</TRNAMT><NAME>B</NAME></STMTTRN>
</BANKTRANLIST>
</CCSTMTRS></CCSTMTTRNRS></CREDITCARDMSGSRSV1></OFX>`

func TestPreviewStatement(t *testing.T) {
	svc := newTestService(t, newStore())

	stmt, views, err := svc.PreviewStatement(context.Background(), 2, strings.NewReader(ofxDoc), transactions.DefaultSort())
	if err != nil {
		t.Fatalf("PreviewStatement returned error: %v", err)
	}
	if len(stmt.Transactions) != 2 || len(views) != 2 {
		t.Fatalf("expected 2 transactions, got %d/%d", len(stmt.Transactions), len(views))
	}
	if views[0].Description != "B" {
		t.Fatalf("expected newest first, got %q", views[0].Description)
	}

	if _, _, err := svc.PreviewStatement(context.Background(), 77, strings.NewReader(ofxDoc), transactions.DefaultSort()); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestNewServiceRejectsBadCurrency(t *testing.T) {
	_, err := NewService(newStore(), logrus.New(), &config.Config{Locale: "en-US", Currency: "XXXX"})
	if err == nil {
		t.Fatal("expected error for invalid currency")
	}
}
