package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		balance       NUMERIC(19, 4) NOT NULL DEFAULT 0,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_username ON accounts (username);

	CREATE TABLE IF NOT EXISTS transactions (
		id          TEXT PRIMARY KEY,
		account_id  TEXT NOT NULL REFERENCES accounts (id),
		amount      NUMERIC(19, 4) NOT NULL,
		description TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions (account_id);
`

// Connect opens the postgres write store, verifies the connection and
// ensures the schema exists.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create db tables: %w", err)
	}
	return db, nil
}
