// Package format renders amounts, percentages and dates for display.
//
// Locale and currency are always explicit: callers build a Formatter from
// Options and pass it where display strings are needed.
package format

import (
	"fmt"
	"time"

	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"

	// NotAvailable is shown for values that cannot be computed
	NotAvailable = "N/A"
)

// Options selects the locale and currency of a Formatter
type Options struct {
	Locale   string
	Currency string
}

// DefaultOptions returns en-US with US dollars
func DefaultOptions() Options {
	return Options{Locale: DefaultLocale, Currency: DefaultCurrency}
}

// Formatter formats values for one locale and currency. It is safe for
// concurrent use.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	symbol  string
	scale   int
	suffix  bool
	dateFmt string
	timeFmt string
}

// New builds a Formatter, rejecting unknown locales and currency codes
func New(opts Options) (*Formatter, error) {
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}

	tag, err := language.Parse(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
	}
	unit, err := currency.ParseISO(opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", opts.Currency, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	layouts := layoutsFor(tag)
	f := &Formatter{
		tag:     tag,
		unit:    unit,
		scale:   scale,
		suffix:  symbolAfterAmount(tag),
		dateFmt: layouts.date,
		timeFmt: layouts.dateTime,
	}
	f.symbol = f.printer().Sprint(currency.Symbol(unit))
	return f, nil
}

// MustNew is New for static options; it panics on invalid input
func MustNew(opts Options) *Formatter {
	f, err := New(opts)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the formatter's language tag
func (f *Formatter) Locale() string { return f.tag.String() }

// Currency returns the ISO code of the formatter's currency
func (f *Formatter) Currency() string { return f.unit.String() }

// Money formats an amount with grouping and the currency symbol, e.g. "-$1,234.50"
func (f *Formatter) Money(d decimal.Decimal) string {
	d = d.Round(int32(f.scale))
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	num := f.number(d.Abs(), f.scale)
	if f.suffix {
		return sign + num + " " + f.symbol
	}
	return sign + f.symbol + num
}

// SignedMoney formats an amount with an explicit sign, e.g. "+$50.00"
func (f *Formatter) SignedMoney(d decimal.Decimal, positive bool) string {
	s := f.Money(d.Abs())
	if positive {
		return "+" + s
	}
	return "-" + s
}

// ActivityAmount signs an activity amount by its type, ignoring the raw sign:
// payments show "+", charges show "-".
func (f *Formatter) ActivityAmount(a models.Activity) string {
	return f.SignedMoney(a.Amount, a.Type == models.ActivityPayment)
}

// Percent formats a percentage with one decimal place; nil yields NotAvailable
func (f *Formatter) Percent(p *decimal.Decimal) string {
	if p == nil {
		return NotAvailable
	}
	return f.number(p.Round(1), 1) + "%"
}

// Rate formats an interest rate percentage with two decimal places
func (f *Formatter) Rate(p decimal.Decimal) string {
	return f.number(p.Round(2), 2) + "%"
}

// Date formats a calendar date; zero dates yield NotAvailable
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(f.dateFmt)
}

// DatePtr formats an optional date
func (f *Formatter) DatePtr(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return f.Date(*t)
}

// DateTime formats a timestamp; zero timestamps yield NotAvailable
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(f.timeFmt)
}

// message.Printer keeps per-call state, so each call gets its own
func (f *Formatter) printer() *message.Printer {
	return message.NewPrinter(f.tag)
}

func (f *Formatter) number(d decimal.Decimal, scale int) string {
	return f.printer().Sprintf(fmt.Sprintf("%%.%df", scale), d.InexactFloat64())
}
