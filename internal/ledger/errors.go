package ledger

import (
	"errors"
	"fmt"

	"github.com/cemilcan0/debt-tracking-app/internal/storage"
)

// Failure classes surfaced to callers. Test with errors.Is.
var (
	// ErrInvalidInput means a name, date, kind or amount could not be accepted.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateName means a person with that name already exists. It is
	// advisory: the caller may reuse the existing person instead.
	ErrDuplicateName = errors.New("person already exists")
	// ErrNotFound means the referenced person or transaction is gone.
	ErrNotFound = errors.New("not found")
	// ErrEmptyLedger means there are no transactions to work with.
	ErrEmptyLedger = errors.New("no transactions recorded")
)

// translate maps storage sentinels onto ledger sentinels, keeping context.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicateName, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
