package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/card-tracker/internal/integrations/ofx"
	"github.com/Dan9191/card-tracker/internal/middleware"
	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/Dan9191/card-tracker/internal/service"
	"github.com/Dan9191/card-tracker/internal/transactions"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	dateLayout      = "2006-01-02"
	maxStatementLen = 5 << 20
)

// CardService is the part of the service the handlers call
type CardService interface {
	Dashboard(ctx context.Context, ref time.Time) (*models.Dashboard, error)
	CardDetail(ctx context.Context, id int64, ref time.Time, sort transactions.Sort) (*models.CardDetail, error)
	Transactions(ctx context.Context, q service.TransactionQuery) ([]models.TransactionView, error)
	Activity(ctx context.Context, ref time.Time) ([]models.ActivityView, error)
	DueReminders(ctx context.Context, ref time.Time) ([]models.Reminder, error)
	PreviewStatement(ctx context.Context, cardID int64, r io.Reader, sort transactions.Sort) (*ofx.Statement, []models.TransactionView, error)
}

type Handler struct {
	svc CardService
	log *logrus.Logger
	now func() time.Time
}

func NewHandler(svc CardService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log, now: time.Now}
}

// Routes registers the API endpoints on r
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	r.HandleFunc("/cards/{id:[0-9]+}", h.CardDetail).Methods("GET")
	r.HandleFunc("/cards/{id:[0-9]+}/transactions", h.Transactions).Methods("GET")
	r.HandleFunc("/cards/{id:[0-9]+}/statements/preview", h.PreviewStatement).Methods("POST")
	r.HandleFunc("/transactions", h.Transactions).Methods("GET")
	r.HandleFunc("/activity", h.Activity).Methods("GET")
	r.HandleFunc("/reminders", h.Reminders).Methods("GET")
}

// Health reports that the process is up
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Dashboard returns every card with its status and the portfolio summary
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ref, err := h.asOf(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.svc.Dashboard(r.Context(), ref)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

// CardDetail returns one card with its transactions, payments and activity
func (h *Handler) CardDetail(w http.ResponseWriter, r *http.Request) {
	id, err := cardID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ref, err := h.asOf(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sort, err := parseSort(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.svc.CardDetail(r.Context(), id, ref, sort)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, detail)
}

// Transactions returns a sorted, filtered transaction list, for one card when
// the route carries an ID
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	var q service.TransactionQuery
	if _, ok := mux.Vars(r)["id"]; ok {
		id, err := cardID(r)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.CardID = id
	}

	var err error
	if q.Sort, err = parseSort(r); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if q.Filter, err = parseFilter(r); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.svc.Transactions(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sort":         q.Sort,
		"transactions": views,
	})
}

// Activity returns the global activity feed
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	ref, err := h.asOf(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	feed, err := h.svc.Activity(r.Context(), ref)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"activity": feed})
}

// Reminders lists cards that need a payment reminder
func (h *Handler) Reminders(w http.ResponseWriter, r *http.Request) {
	ref, err := h.asOf(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reminders, err := h.svc.DueReminders(r.Context(), ref)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"as_of":     ref.Format(dateLayout),
		"reminders": reminders,
	})
}

// PreviewStatement parses an uploaded OFX statement for a card without storing it
func (h *Handler) PreviewStatement(w http.ResponseWriter, r *http.Request) {
	id, err := cardID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sort, err := parseSort(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxStatementLen)
	stmt, views, err := h.svc.PreviewStatement(r.Context(), id, body, sort)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"account_id":     stmt.AccountID,
		"currency":       stmt.Currency,
		"ledger_balance": stmt.LedgerBalance,
		"balance_as_of":  stmt.BalanceAsOf,
		"skipped":        stmt.Skipped,
		"sort":           sort,
		"transactions":   views,
	})
}

func (h *Handler) asOf(r *http.Request) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get("as_of"))
	if v == "" {
		return h.now(), nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of %q, expected YYYY-MM-DD", v)
	}
	return t, nil
}

func cardID(r *http.Request) (int64, error) {
	v := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid card id %q", v)
	}
	return id, nil
}

func parseSort(r *http.Request) (transactions.Sort, error) {
	q := r.URL.Query()
	return transactions.ParseSort(q.Get("sort"), q.Get("dir"))
}

func parseFilter(r *http.Request) (transactions.Filter, error) {
	q := r.URL.Query()
	f := transactions.Filter{
		Categories: q["category"],
		Search:     q.Get("q"),
	}

	kind, err := transactions.ParseKind(q.Get("kind"))
	if err != nil {
		return f, err
	}
	f.Kind = kind

	if v := q.Get("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid from %q, expected YYYY-MM-DD", v)
		}
		f.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid to %q, expected YYYY-MM-DD", v)
		}
		// whole day
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &to
	}
	if f.MinAmount, err = parseAmount(q.Get("min"), "min"); err != nil {
		return f, err
	}
	if f.MaxAmount, err = parseAmount(q.Get("max"), "max"); err != nil {
		return f, err
	}
	return f, nil
}

func parseAmount(v, name string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, v)
	}
	return &d, nil
}

// fail maps service errors to status codes
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, service.ErrCardNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &tooLarge):
		h.writeError(w, http.StatusRequestEntityTooLarge, "statement too large")
	case errors.Is(err, ofx.ErrNoStatement), errors.Is(err, ofx.ErrMalformed):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		entry := h.log.WithError(err).WithField("request_id", middleware.RequestIDFromContext(r.Context()))
		if sub, ok := middleware.SubjectFromContext(r.Context()); ok {
			entry = entry.WithField("subject", sub)
		}
		entry.Errorf("Request %s %s failed", r.Method, r.URL.Path)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warnf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
