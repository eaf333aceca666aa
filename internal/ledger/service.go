// Package ledger holds the bookkeeping rules: validating raw input, managing
// people and their transactions, and computing credit/debit aggregates.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cemilcan0/debt-tracking-app/internal/model"
	"github.com/cemilcan0/debt-tracking-app/internal/storage"
)

// Service provides business logic over a storage.Store.
type Service struct {
	store storage.Store
}

// NewService creates a ledger Service.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// RecordParams holds the fields of the "new person and transaction" flow.
type RecordParams struct {
	Name string
	TransactionInput
	// Reuse opts in to adding the transaction to an existing person with the
	// same name. Without it an existing name is reported as ErrDuplicateName.
	Reuse bool
}

// RecordResult reports what RecordEntry stored.
type RecordResult struct {
	PersonID      int64
	TransactionID int64
	Reused        bool
}

// AddPerson creates a person. If the name is taken it returns the existing
// person's ID together with ErrDuplicateName.
func (s *Service) AddPerson(ctx context.Context, name string) (int64, error) {
	name, err := ParseName(name)
	if err != nil {
		return 0, err
	}

	existing, err := s.store.GetPersonByName(ctx, name)
	if err == nil {
		return existing.ID, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("looking up person: %w", err)
	}

	p := &model.Person{Name: name}
	if err := s.store.CreatePerson(ctx, p); err != nil {
		return 0, translate("creating person", err)
	}
	slog.InfoContext(ctx, "Person added", "person_id", p.ID, "name", p.Name)
	return p.ID, nil
}

// AddTransaction validates the raw input and appends a transaction to an
// existing person. Amount positivity is not checked.
func (s *Service) AddTransaction(ctx context.Context, personID int64, in TransactionInput) (int64, error) {
	t, err := ParseTransaction(in)
	if err != nil {
		return 0, err
	}
	t.PersonID = personID

	if err := s.store.CreateTransaction(ctx, &t); err != nil {
		return 0, translate("creating transaction", err)
	}
	slog.InfoContext(ctx, "Transaction added",
		"transaction_id", t.ID,
		"person_id", t.PersonID,
		"kind", t.Kind,
		"amount", t.Amount.String(),
	)
	return t.ID, nil
}

// RecordEntry creates a person (unless one exists and p.Reuse is set) and
// their transaction in a single atomic write. Nothing is written on error.
func (s *Service) RecordEntry(ctx context.Context, p RecordParams) (RecordResult, error) {
	name, err := ParseName(p.Name)
	if err != nil {
		return RecordResult{}, err
	}
	t, err := ParseTransaction(p.TransactionInput)
	if err != nil {
		return RecordResult{}, err
	}

	reused := false
	existing, err := s.store.GetPersonByName(ctx, name)
	switch {
	case err == nil:
		if !p.Reuse {
			return RecordResult{PersonID: existing.ID}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		reused = true
	case !errors.Is(err, storage.ErrNotFound):
		return RecordResult{}, fmt.Errorf("looking up person: %w", err)
	}

	entries := []model.Entry{{PersonName: name, Transaction: t}}
	if err := s.store.CreateEntries(ctx, entries); err != nil {
		return RecordResult{}, translate("recording entry", err)
	}

	stored := entries[0].Transaction
	slog.InfoContext(ctx, "Entry recorded",
		"person_id", stored.PersonID,
		"transaction_id", stored.ID,
		"reused", reused,
	)
	return RecordResult{PersonID: stored.PersonID, TransactionID: stored.ID, Reused: reused}, nil
}

// Import stores already-parsed entries atomically. Unless reuse is set, any
// entry naming an existing person fails the whole batch with ErrDuplicateName.
func (s *Service) Import(ctx context.Context, entries []model.Entry, reuse bool) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: nothing to import", ErrEmptyLedger)
	}

	checked := make(map[string]bool)
	for i := range entries {
		name, err := ParseName(entries[i].PersonName)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		if !entries[i].Transaction.Kind.Valid() {
			return fmt.Errorf("entry %d: %w: unknown kind %q", i+1, ErrInvalidInput, entries[i].Transaction.Kind)
		}
		entries[i].PersonName = name

		if reuse || checked[name] {
			continue
		}
		checked[name] = true
		_, err = s.store.GetPersonByName(ctx, name)
		if err == nil {
			return fmt.Errorf("entry %d: %w: %q", i+1, ErrDuplicateName, name)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("looking up person: %w", err)
		}
	}

	if err := s.store.CreateEntries(ctx, entries); err != nil {
		return translate("importing entries", err)
	}
	slog.InfoContext(ctx, "Entries imported", "count", len(entries))
	return nil
}

// DeletePerson removes a person and every transaction they own.
func (s *Service) DeletePerson(ctx context.Context, personID int64) error {
	if err := s.store.DeletePerson(ctx, personID); err != nil {
		return translate("deleting person", err)
	}
	slog.InfoContext(ctx, "Person deleted", "person_id", personID)
	return nil
}

// DeleteTransaction removes one transaction.
func (s *Service) DeleteTransaction(ctx context.Context, transactionID int64) error {
	if err := s.store.DeleteTransaction(ctx, transactionID); err != nil {
		return translate("deleting transaction", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "transaction_id", transactionID)
	return nil
}

// ListTransactions returns one person's rows ordered by date, or, when
// personID is 0, everyone's rows ordered by person name and then date.
func (s *Service) ListTransactions(ctx context.Context, personID int64) ([]model.Row, error) {
	rows, err := s.store.ListTransactions(ctx, storage.TransactionFilter{PersonID: personID})
	if err != nil {
		return nil, translate("listing transactions", err)
	}
	return rows, nil
}

// ListPeople returns everyone ordered by name.
func (s *Service) ListPeople(ctx context.Context) ([]model.Person, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, translate("listing people", err)
	}
	return people, nil
}

// GetPerson looks a person up by ID.
func (s *Service) GetPerson(ctx context.Context, personID int64) (model.Person, error) {
	p, err := s.store.GetPerson(ctx, personID)
	if err != nil {
		return model.Person{}, translate("getting person", err)
	}
	return *p, nil
}

// FindPerson looks a person up by display name. Surrounding whitespace is ignored.
func (s *Service) FindPerson(ctx context.Context, name string) (model.Person, error) {
	name, err := ParseName(name)
	if err != nil {
		return model.Person{}, err
	}
	p, err := s.store.GetPersonByName(ctx, name)
	if err != nil {
		return model.Person{}, translate("finding person", err)
	}
	return *p, nil
}
