package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind says which side of the ledger a transaction sits on.
type Kind string

const (
	// KindCredit is money the tracked person is owed by the ledger owner.
	KindCredit Kind = "credit"
	// KindDebit is money the tracked person owes.
	KindDebit Kind = "debit"
)

// ParseKind accepts "credit" or "debit" in any case, as well as the
// Turkish labels "alacak" and "borç".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit", "alacak":
		return KindCredit, nil
	case "debit", "borç", "borc":
		return KindDebit, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want credit or debit)", s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindCredit || k == KindDebit
}

// Label is the capitalized display form used in tables and workbooks.
func (k Kind) Label() string {
	switch k {
	case KindCredit:
		return "Credit"
	case KindDebit:
		return "Debit"
	default:
		return string(k)
	}
}

// Transaction is a single credit or debit owned by exactly one person.
type Transaction struct {
	ID       int64
	PersonID int64
	Date     time.Time       // calendar date, UTC midnight
	Kind     Kind            //nolint:revive // plain field name is clearest
	Amount   decimal.Decimal // magnitude by convention; the sign is not enforced
}

// Row is a transaction joined with its owner's name, as returned by listings.
type Row struct {
	TransactionID int64
	PersonID      int64
	PersonName    string
	Date          time.Time
	Kind          Kind
	Amount        decimal.Decimal
}

// Totals holds the aggregates for a set of rows.
type Totals struct {
	Credit  decimal.Decimal
	Debit   decimal.Decimal
	Balance decimal.Decimal // Credit - Debit
}

// PersonSummary is one line of the all-people summary.
type PersonSummary struct {
	Name string
	Totals
}
