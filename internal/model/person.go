package model

// Person is someone the ledger owner keeps a running balance with.
// Names are unique and case-sensitive.
type Person struct {
	ID   int64
	Name string
}

// Entry is a transaction to record for a person identified by name.
// The person is created when no one by that name exists yet.
type Entry struct {
	PersonName  string
	Transaction Transaction
}
