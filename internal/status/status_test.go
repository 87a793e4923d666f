package status

import (
	"testing"
	"time"

	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/shopspring/decimal"
)

var ref = time.Date(2026, time.October, 19, 15, 30, 0, 0, time.UTC)

func dueIn(days int) *time.Time {
	d := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &d
}

func owingCard(due *time.Time) models.Card {
	return models.Card{
		ID:             1,
		Name:           "Everyday",
		CreditLimit:    decimal.NewFromInt(5000),
		CurrentBalance: decimal.NewFromInt(640),
		DueDate:        due,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		card models.Card
		want models.CardStatus
	}{
		{name: "due in 2 days", card: owingCard(dueIn(2)), want: models.StatusUrgent},
		{name: "due in 10 days", card: owingCard(dueIn(10)), want: models.StatusUpcoming},
		{name: "due in 30 days", card: owingCard(dueIn(30)), want: models.StatusUnknown},
		{name: "due today", card: owingCard(dueIn(0)), want: models.StatusUrgent},
		{name: "past due", card: owingCard(dueIn(-5)), want: models.StatusUrgent},
		{name: "urgent boundary inclusive", card: owingCard(dueIn(3)), want: models.StatusUrgent},
		{name: "first upcoming day", card: owingCard(dueIn(4)), want: models.StatusUpcoming},
		{name: "upcoming boundary inclusive", card: owingCard(dueIn(14)), want: models.StatusUpcoming},
		{name: "just outside upcoming", card: owingCard(dueIn(15)), want: models.StatusUnknown},
		{name: "no due date", card: owingCard(nil), want: models.StatusUnknown},
		{name: "zero due date", card: owingCard(&time.Time{}), want: models.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.card, ref, DefaultThresholds())
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClassifyPaid(t *testing.T) {
	card := owingCard(dueIn(1))
	card.PaidThisCycle = true
	if got := Classify(card, ref, DefaultThresholds()); got != models.StatusPaid {
		t.Fatalf("expected paid card to be paid, got %q", got)
	}

	card = owingCard(dueIn(1))
	card.CurrentBalance = decimal.Zero
	if got := Classify(card, ref, DefaultThresholds()); got != models.StatusPaid {
		t.Fatalf("expected zero balance card to be paid, got %q", got)
	}
}

func TestClassifyIsPure(t *testing.T) {
	card := owingCard(dueIn(6))
	first := Classify(card, ref, DefaultThresholds())
	for i := 0; i < 5; i++ {
		if got := Classify(card, ref, DefaultThresholds()); got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i, got, first)
		}
	}
}

func TestEvaluateOverdue(t *testing.T) {
	c := Evaluate(owingCard(dueIn(-2)), ref, DefaultThresholds())
	if !c.Overdue {
		t.Fatal("expected overdue flag")
	}
	if c.DaysUntilDue == nil || *c.DaysUntilDue != -2 {
		t.Fatalf("expected -2 days until due, got %v", c.DaysUntilDue)
	}

	c = Evaluate(owingCard(dueIn(0)), ref, DefaultThresholds())
	if c.Overdue {
		t.Fatal("a card due today is not overdue")
	}
}

func TestCustomThresholds(t *testing.T) {
	th := Thresholds{UrgentDays: 7, UpcomingDays: 30}
	if got := Classify(owingCard(dueIn(6)), ref, th); got != models.StatusUrgent {
		t.Fatalf("expected urgent, got %q", got)
	}
	if got := Classify(owingCard(dueIn(30)), ref, th); got != models.StatusUpcoming {
		t.Fatalf("expected upcoming, got %q", got)
	}
}

func TestThresholdsNormalize(t *testing.T) {
	got := Thresholds{UrgentDays: -1, UpcomingDays: -1}.Normalize()
	if got != DefaultThresholds() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	got = Thresholds{UrgentDays: 10, UpcomingDays: 5}.Normalize()
	if got.UpcomingDays != 10 {
		t.Fatalf("expected upcoming raised to 10, got %d", got.UpcomingDays)
	}
}

func TestResolveDueDateFromDueDay(t *testing.T) {
	tests := []struct {
		name   string
		dueDay int
		ref    time.Time
		want   *time.Time
	}{
		{
			name:   "later this month",
			dueDay: 25,
			ref:    ref,
			want:   dueIn(6),
		},
		{
			name:   "today",
			dueDay: 19,
			ref:    ref,
			want:   dueIn(0),
		},
		{
			name:   "rolls to next month",
			dueDay: 5,
			ref:    ref,
			want:   ptr(time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:   "clamped to month end",
			dueDay: 31,
			ref:    time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
			want:   ptr(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:   "rolls over year end",
			dueDay: 1,
			ref:    time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC),
			want:   ptr(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)),
		},
		{name: "invalid day", dueDay: 32, ref: ref, want: nil},
		{name: "unset", dueDay: 0, ref: ref, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDueDate(models.Card{DueDay: tt.dueDay}, tt.ref)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil || !got.Equal(*tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDueDateTakesPrecedenceOverDueDay(t *testing.T) {
	card := owingCard(dueIn(20))
	card.DueDay = 20
	if got := Classify(card, ref, DefaultThresholds()); got != models.StatusUnknown {
		t.Fatalf("expected absolute due date to win, got %q", got)
	}
}

func ptr(t time.Time) *time.Time { return &t }
