package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cemilcan0/debt-tracking-app/internal/model"
)

const (
	// dateLayout accepts one- or two-digit day and month and a four-digit year.
	dateLayout = "2.1.2006"
	// DisplayDateLayout is how dates are shown and exported.
	DisplayDateLayout = "02.01.2006"
)

// TransactionInput holds raw, user-entered transaction fields.
type TransactionInput struct {
	Date   string // day.month.year
	Kind   string // credit | debit
	Amount string
}

// ParseName trims a person name and rejects empty ones.
func ParseName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	return name, nil
}

// ParseDate parses a day.month.year date such as "15.03.2024" or "5.1.2024".
// Any other format is rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not day.month.year", ErrInvalidInput, s)
	}
	return t, nil
}

// FormatDate renders a date as dd.mm.yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// ParseAmount parses a real number. Negative values are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, s)
	}
	return d, nil
}

// ParseTransaction validates every field of in and returns the transaction
// it describes, without an owner.
func ParseTransaction(in TransactionInput) (model.Transaction, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	kind, err := model.ParseKind(in.Kind)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{Date: date, Kind: kind, Amount: amount}, nil
}
