package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/harborbank/bank-api/internal/bank"
	"github.com/harborbank/bank-api/internal/models"
)

// AccountRepository handles persistence for the accounts table.
type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, password_hash, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.PasswordHash,
		account.Balance, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return bank.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, balance, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// UpdateBalance persists a new balance for the account. The caller decides
// the new value; the repository does no arithmetic.
func (r *AccountRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE accounts SET balance = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, balance, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check balance update: %w", err)
	}
	if rows == 0 {
		return bank.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check account delete: %w", err)
	}
	if rows == 0 {
		return bank.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID, &account.Username, &account.PasswordHash,
		&account.Balance, &account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bank.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// isUniqueViolation recognises a unique-index violation from postgres
// (class 23505) or from the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
