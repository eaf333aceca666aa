// Package storage defines the persistence boundary for people and their
// transactions.
package storage

import (
	"context"
	"errors"

	"github.com/cemilcan0/debt-tracking-app/internal/model"
)

var (
	// ErrNotFound is returned when a referenced person or transaction does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would violate a uniqueness constraint.
	ErrConflict = errors.New("record conflicts with an existing one")
)

// TransactionFilter narrows ListTransactions. The zero value selects everything.
type TransactionFilter struct {
	PersonID int64 // 0 = all people
}

// Store is the durable home of people and transactions. There is no update
// operation; corrections are a delete followed by a fresh insert.
type Store interface {
	// CreatePerson inserts a person and fills in p.ID.
	// Returns ErrConflict if the name is taken.
	CreatePerson(ctx context.Context, p *model.Person) error

	// GetPerson returns ErrNotFound if no person has the given ID.
	GetPerson(ctx context.Context, id int64) (*model.Person, error)

	// GetPersonByName looks a person up by exact, case-sensitive name.
	GetPersonByName(ctx context.Context, name string) (*model.Person, error)

	// ListPeople returns everyone ordered by name.
	ListPeople(ctx context.Context) ([]model.Person, error)

	// DeletePerson removes a person together with all of their transactions.
	DeletePerson(ctx context.Context, id int64) error

	// CreateTransaction inserts t and fills in t.ID.
	// Returns ErrNotFound if t.PersonID does not exist.
	CreateTransaction(ctx context.Context, t *model.Transaction) error

	// CreateEntries records every entry in one transaction, creating people
	// that do not exist yet. Either all entries are stored or none are.
	// On success each entry's Transaction.ID and Transaction.PersonID are set.
	CreateEntries(ctx context.Context, entries []model.Entry) error

	// DeleteTransaction returns ErrNotFound if no transaction has the given ID.
	DeleteTransaction(ctx context.Context, id int64) error

	// ListTransactions returns rows ordered by person name, then date, then ID.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Row, error)

	// Close releases any resources held by the store.
	Close() error
}
