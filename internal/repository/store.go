package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories are written against it so the same code runs standalone
// or inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories bundles the per-table repositories bound to a single DBTX.
type Repositories struct {
	Accounts     *AccountRepository
	Transactions *TransactionRepository
}

// Store is the persistence boundary: the two repositories for plain reads,
// plus ExecTx for multi-statement units of work.
type Store struct {
	db *sql.DB
	Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
		Repositories: Repositories{
			Accounts:     NewAccountRepository(db),
			Transactions: NewTransactionRepository(db),
		},
	}
}

// ExecTx runs fn inside one database transaction. Every statement issued
// through the Repositories handed to fn commits or rolls back together:
// if fn returns an error, nothing it did persists.
func (s *Store) ExecTx(ctx context.Context, fn func(r *Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	repos := &Repositories{
		Accounts:     NewAccountRepository(tx),
		Transactions: NewTransactionRepository(tx),
	}

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
