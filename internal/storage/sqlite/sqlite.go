// Package sqlite provides a SQLite-backed implementation of storage.Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	msqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/cemilcan0/debt-tracking-app/internal/model"
	"github.com/cemilcan0/debt-tracking-app/internal/storage"
)

const isoDate = "2006-01-02"

// Ensure Store implements storage.Store.
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on a single local database file.
type Store struct {
	db *sql.DB
}

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New opens (creating if needed) the database at dbPath and ensures the
// schema exists. Foreign keys are enabled on every pooled connection.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer, one connection.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreatePerson inserts a new person.
func (s *Store) CreatePerson(ctx context.Context, p *model.Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := personIDByName(ctx, tx, p.Name); err == nil {
		return fmt.Errorf("person %q: %w", p.Name, storage.ErrConflict)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	id, err := insertPerson(ctx, tx, p.Name)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing person: %w", err)
	}
	p.ID = id
	return nil
}

// GetPerson retrieves a person by ID.
func (s *Store) GetPerson(ctx context.Context, id int64) (*model.Person, error) {
	p := &model.Person{}
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM persons WHERE id = ?", id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting person: %w", err)
	}
	return p, nil
}

// GetPersonByName retrieves a person by exact name.
func (s *Store) GetPersonByName(ctx context.Context, name string) (*model.Person, error) {
	id, err := personIDByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	return &model.Person{ID: id, Name: name}, nil
}

// ListPeople returns all people ordered by name.
func (s *Store) ListPeople(ctx context.Context) ([]model.Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM persons ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}

// DeletePerson removes a person and their transactions atomically.
func (s *Store) DeletePerson(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM persons WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("person %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking person existence: %w", err)
	}

	// The cascade would handle this too; deleting explicitly keeps the
	// result independent of the foreign_keys pragma.
	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE person_id = ?", id); err != nil {
		return fmt.Errorf("deleting transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// CreateTransaction inserts a transaction for an existing person.
func (s *Store) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM persons WHERE id = ?", t.PersonID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("person %d: %w", t.PersonID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking person existence: %w", err)
	}

	if err := insertTransaction(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CreateEntries inserts all entries, creating missing people, in one transaction.
func (s *Store) CreateEntries(ctx context.Context, entries []model.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Work on copies so a failed commit leaves the caller's entries untouched.
	created := make([]model.Transaction, len(entries))
	for i, e := range entries {
		personID, err := personIDByName(ctx, tx, e.PersonName)
		if errors.Is(err, storage.ErrNotFound) {
			personID, err = insertPerson(ctx, tx, e.PersonName)
		}
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}

		t := e.Transaction
		t.PersonID = personID
		if err := insertTransaction(ctx, tx, &t); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		created[i] = t
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entries: %w", err)
	}
	for i := range entries {
		entries[i].Transaction = created[i]
	}
	return nil
}

// DeleteTransaction removes a single transaction by ID.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ListTransactions returns transaction rows joined with their owner's name.
func (s *Store) ListTransactions(ctx context.Context, filter storage.TransactionFilter) ([]model.Row, error) {
	query := `
		SELECT t.id, t.person_id, p.name, t.date, t.kind, t.amount
		FROM transactions t
		JOIN persons p ON p.id = t.person_id`
	var args []any
	if filter.PersonID != 0 {
		query += " WHERE t.person_id = ?"
		args = append(args, filter.PersonID)
	}
	query += " ORDER BY p.name, t.date, t.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var result []model.Row
	for rows.Next() {
		var r model.Row
		var date, kind string
		if err := rows.Scan(&r.TransactionID, &r.PersonID, &r.PersonName, &date, &kind, &r.Amount); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		r.Date, err = time.Parse(isoDate, date)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", date, err)
		}
		r.Kind = model.Kind(kind)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return result, nil
}

func personIDByName(ctx context.Context, q execQuerier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, "SELECT id FROM persons WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("person %q: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up person: %w", err)
	}
	return id, nil
}

func insertPerson(ctx context.Context, q execQuerier, name string) (int64, error) {
	res, err := q.ExecContext(ctx, "INSERT INTO persons (name) VALUES (?)", name)
	if err != nil {
		if isConstraint(err) {
			return 0, fmt.Errorf("person %q: %w", name, storage.ErrConflict)
		}
		return 0, fmt.Errorf("inserting person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading person id: %w", err)
	}
	return id, nil
}

func insertTransaction(ctx context.Context, q execQuerier, t *model.Transaction) error {
	res, err := q.ExecContext(ctx,
		"INSERT INTO transactions (person_id, date, kind, amount) VALUES (?, ?, ?, ?)",
		t.PersonID, t.Date.Format(isoDate), string(t.Kind), t.Amount,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading transaction id: %w", err)
	}
	t.ID = id
	return nil
}

// isConstraint reports whether err is any SQLite constraint violation.
func isConstraint(err error) bool {
	var se *msqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
