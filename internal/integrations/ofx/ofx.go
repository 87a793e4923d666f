// Package ofx reads OFX 2.x (XML) credit card statements into transactions.
package ofx

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrNoStatement is returned when the document has no credit card statement
var ErrNoStatement = errors.New("no credit card statement found in OFX document")

// ErrMalformed is returned when the document is not well-formed XML
var ErrMalformed = errors.New("malformed OFX document")

// Statement is a parsed credit card statement
type Statement struct {
	AccountID     string               `json:"account_id"`
	Currency      string               `json:"currency"`
	LedgerBalance *decimal.Decimal     `json:"ledger_balance"`
	BalanceAsOf   *time.Time           `json:"balance_as_of,omitempty"`
	Transactions  []models.Transaction `json:"transactions"`
	Skipped       int                  `json:"skipped"` // Transactions dropped for missing or malformed fields
}

// Parser converts OFX documents to statements
type Parser struct {
	log *logrus.Logger
}

// NewParser initializes a new OFX parser
func NewParser(log *logrus.Logger) *Parser {
	return &Parser{log: log}
}

// Parse reads a statement and assigns its transactions to cardID. Transaction
// IDs are their position in the statement, starting at 1.
func (p *Parser) Parse(r io.Reader, cardID int64) (*Statement, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	stmt := doc.FindElement("//CCSTMTRS")
	if stmt == nil {
		return nil, ErrNoStatement
	}

	out := &Statement{
		AccountID:    childText(stmt, "CCACCTFROM/ACCTID"),
		Currency:     childText(stmt, "CURDEF"),
		Transactions: []models.Transaction{},
	}

	if bal := stmt.FindElement("LEDGERBAL"); bal != nil {
		if amt, err := decimal.NewFromString(childText(bal, "BALAMT")); err == nil {
			// OFX reports card debt as a negative balance
			owed := amt.Neg()
			out.LedgerBalance = &owed
		}
		if asOf, err := parseDate(childText(bal, "DTASOF")); err == nil {
			out.BalanceAsOf = &asOf
		}
	}

	for i, el := range stmt.FindElements("BANKTRANLIST/STMTTRN") {
		tx, err := parseTransaction(el)
		if err != nil {
			out.Skipped++
			p.log.Debugf("Skipping OFX transaction %d: %v", i+1, err)
			continue
		}
		tx.ID = int64(i + 1)
		tx.CardID = cardID
		out.Transactions = append(out.Transactions, tx)
	}

	p.log.Infof("Parsed OFX statement for account %s: %d transactions, %d skipped",
		maskAccount(out.AccountID), len(out.Transactions), out.Skipped)
	return out, nil
}

func parseTransaction(el *etree.Element) (models.Transaction, error) {
	var tx models.Transaction

	date, err := parseDate(childText(el, "DTPOSTED"))
	if err != nil {
		return tx, fmt.Errorf("invalid DTPOSTED: %w", err)
	}
	amount, err := decimal.NewFromString(childText(el, "TRNAMT"))
	if err != nil {
		return tx, fmt.Errorf("invalid TRNAMT: %w", err)
	}

	name := childText(el, "NAME")
	memo := childText(el, "MEMO")
	tx.Date = date
	tx.Amount = amount
	tx.Merchant = name
	tx.Description = name
	if tx.Description == "" {
		tx.Description = memo
	}
	tx.Category = categoryFor(childText(el, "TRNTYPE"), childText(el, "SIC"))
	return tx, nil
}

// parseDate reads OFX datetimes: YYYYMMDD[HHMMSS[.XXX]][[offset:TZ]]
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := time.UTC
	if i := strings.IndexByte(s, '['); i >= 0 {
		tz := strings.TrimSuffix(s[i+1:], "]")
		s = s[:i]
		if j := strings.IndexByte(tz, ':'); j >= 0 {
			tz = tz[:j]
		}
		var hours float64
		if _, err := fmt.Sscanf(tz, "%g", &hours); err == nil {
			loc = time.FixedZone("", int(hours*3600))
		}
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}

	switch len(s) {
	case 8:
		return time.ParseInLocation("20060102", s, loc)
	case 12:
		return time.ParseInLocation("200601021504", s, loc)
	case 14:
		return time.ParseInLocation("20060102150405", s, loc)
	default:
		return time.Time{}, fmt.Errorf("unsupported OFX date %q", s)
	}
}

// Merchant category codes mapped onto the dashboard categories
var sicCategories = map[string]string{
	"5411": "groceries", "5422": "groceries", "5499": "groceries",
	"5812": "dining", "5813": "dining", "5814": "dining",
	"5541": "gas", "5542": "gas",
	"5311": "shopping", "5651": "shopping", "5732": "shopping", "5942": "shopping",
	"7832": "entertainment", "7922": "entertainment", "7996": "entertainment", "5815": "entertainment",
	"3000": "travel", "4511": "travel", "4722": "travel", "7011": "travel", "4121": "travel",
	"4900": "utilities", "4814": "utilities",
	"8011": "healthcare", "8062": "healthcare", "5912": "healthcare",
}

func categoryFor(trnType, sic string) string {
	if strings.EqualFold(trnType, "PAYMENT") {
		return "payment"
	}
	if c, ok := sicCategories[sic]; ok {
		return c
	}
	return ""
}

func childText(el *etree.Element, path string) string {
	if c := el.FindElement(path); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func maskAccount(id string) string {
	if len(id) <= 4 {
		return id
	}
	return "****" + id[len(id)-4:]
}
