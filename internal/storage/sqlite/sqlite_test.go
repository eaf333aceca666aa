package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cemilcan0/debt-tracking-app/internal/model"
	"github.com/cemilcan0/debt-tracking-app/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "debts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txn(personID int64, d time.Time, kind model.Kind, amount string) *model.Transaction {
	return &model.Transaction{PersonID: personID, Date: d, Kind: kind, Amount: decimal.RequireFromString(amount)}
}

func TestNew_SchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debts.db")

	first, err := New(path)
	require.NoError(t, err)
	p := &model.Person{Name: "Ada"}
	require.NoError(t, first.CreatePerson(context.Background(), p))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	people, err := second.ListPeople(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Ada", people[0].Name)
}

func TestCreatePerson(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := &model.Person{Name: "Ada"}
	require.NoError(t, store.CreatePerson(ctx, p))
	assert.NotZero(t, p.ID)

	got, err := store.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	byName, err := store.GetPersonByName(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		err := store.CreatePerson(ctx, &model.Person{Name: "Ada"})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		require.NoError(t, store.CreatePerson(ctx, &model.Person{Name: "ada"}))
	})

	t.Run("missing person", func(t *testing.T) {
		_, err := store.GetPerson(ctx, 9999)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = store.GetPersonByName(ctx, "Nobody")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCreateTransaction_UnknownPerson(t *testing.T) {
	store := newTestStore(t)

	err := store.CreateTransaction(context.Background(), txn(42, date(2024, 1, 5), model.KindCredit, "10"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListTransactions_Ordering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	beto := &model.Person{Name: "Beto"}
	ada := &model.Person{Name: "Ada"}
	require.NoError(t, store.CreatePerson(ctx, beto))
	require.NoError(t, store.CreatePerson(ctx, ada))

	// Inserted out of calendar order. As day-first text "05.02.2024" would
	// sort before "20.01.2024"; as dates it comes after.
	require.NoError(t, store.CreateTransaction(ctx, txn(beto.ID, date(2024, 1, 20), model.KindDebit, "30")))
	require.NoError(t, store.CreateTransaction(ctx, txn(ada.ID, date(2024, 2, 5), model.KindDebit, "40")))
	require.NoError(t, store.CreateTransaction(ctx, txn(ada.ID, date(2024, 1, 20), model.KindCredit, "100")))

	rows, err := store.ListTransactions(ctx, storage.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ada", rows[0].PersonName)
	assert.Equal(t, date(2024, 1, 20), rows[0].Date)
	assert.Equal(t, "Ada", rows[1].PersonName)
	assert.Equal(t, date(2024, 2, 5), rows[1].Date)
	assert.Equal(t, "Beto", rows[2].PersonName)
	assert.True(t, rows[2].Amount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, model.KindDebit, rows[2].Kind)

	only, err := store.ListTransactions(ctx, storage.TransactionFilter{PersonID: beto.ID})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, beto.ID, only[0].PersonID)
}

func TestDeletePerson_Cascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ada := &model.Person{Name: "Ada"}
	require.NoError(t, store.CreatePerson(ctx, ada))
	require.NoError(t, store.CreateTransaction(ctx, txn(ada.ID, date(2024, 3, 15), model.KindCredit, "250")))
	require.NoError(t, store.CreateTransaction(ctx, txn(ada.ID, date(2024, 3, 16), model.KindDebit, "50")))

	require.NoError(t, store.DeletePerson(ctx, ada.ID))

	rows, err := store.ListTransactions(ctx, storage.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	var orphans int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&orphans))
	assert.Zero(t, orphans)

	assert.ErrorIs(t, store.DeletePerson(ctx, ada.ID), storage.ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ada := &model.Person{Name: "Ada"}
	require.NoError(t, store.CreatePerson(ctx, ada))
	tx := txn(ada.ID, date(2024, 3, 15), model.KindCredit, "250")
	require.NoError(t, store.CreateTransaction(ctx, tx))
	require.NotZero(t, tx.ID)

	require.NoError(t, store.DeleteTransaction(ctx, tx.ID))
	assert.ErrorIs(t, store.DeleteTransaction(ctx, tx.ID), storage.ErrNotFound)
}

func TestCreateEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	existing := &model.Person{Name: "Ada"}
	require.NoError(t, store.CreatePerson(ctx, existing))

	entries := []model.Entry{
		{PersonName: "Ada", Transaction: *txn(0, date(2024, 1, 1), model.KindCredit, "10")},
		{PersonName: "Beto", Transaction: *txn(0, date(2024, 1, 2), model.KindDebit, "5.25")},
		{PersonName: "Beto", Transaction: *txn(0, date(2024, 1, 3), model.KindCredit, "1")},
	}
	require.NoError(t, store.CreateEntries(ctx, entries))

	assert.Equal(t, existing.ID, entries[0].Transaction.PersonID)
	assert.NotZero(t, entries[1].Transaction.ID)
	assert.Equal(t, entries[1].Transaction.PersonID, entries[2].Transaction.PersonID)

	people, err := store.ListPeople(ctx)
	require.NoError(t, err)
	assert.Len(t, people, 2)

	rows, err := store.ListTransactions(ctx, storage.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestCreateEntries_RollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []model.Entry{
		{PersonName: "Ada", Transaction: *txn(0, date(2024, 1, 1), model.KindCredit, "10")},
		// Rejected by the CHECK constraint on kind.
		{PersonName: "Beto", Transaction: *txn(0, date(2024, 1, 2), model.Kind("refund"), "5")},
	}
	require.Error(t, store.CreateEntries(ctx, entries))
	assert.Zero(t, entries[0].Transaction.ID)

	people, err := store.ListPeople(ctx)
	require.NoError(t, err)
	assert.Empty(t, people)

	rows, err := store.ListTransactions(ctx, storage.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAmountsKeepPrecision(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ada := &model.Person{Name: "Ada"}
	require.NoError(t, store.CreatePerson(ctx, ada))
	require.NoError(t, store.CreateTransaction(ctx, txn(ada.ID, date(2024, 1, 1), model.KindCredit, "0.1")))
	require.NoError(t, store.CreateTransaction(ctx, txn(ada.ID, date(2024, 1, 1), model.KindCredit, "-12.345")))

	rows, err := store.ListTransactions(ctx, storage.TransactionFilter{PersonID: ada.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0.1", rows[0].Amount.String())
	assert.Equal(t, "-12.345", rows[1].Amount.String())
}
