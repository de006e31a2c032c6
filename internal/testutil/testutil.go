// Package testutil provides test-only helpers shared across packages.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harborbank/bank-api/internal/repository"
)

// Amount columns are TEXT so decimals round-trip exactly; the placeholder
// syntax in the repositories ($1, $2, ...) is accepted by sqlite as-is.
var sqliteSchema = `
	CREATE TABLE accounts (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		balance       TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	);

	CREATE UNIQUE INDEX idx_accounts_username ON accounts (username);

	CREATE TABLE transactions (
		id          TEXT PRIMARY KEY,
		account_id  TEXT NOT NULL REFERENCES accounts (id),
		amount      TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL
	);

	CREATE INDEX idx_transactions_account_id ON transactions (account_id);
`

// NewSQLiteStore returns a Store backed by an in-memory sqlite database
// with the bank schema applied. The database lives for the duration of the
// test and supports real transactions, so rollback behaviour is exercised
// for real.
func NewSQLiteStore(t *testing.T) *repository.Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps every statement on the same in-memory
	// database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return repository.NewStore(db)
}
