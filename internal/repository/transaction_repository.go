package repository

import (
	"context"
	"fmt"

	"github.com/harborbank/bank-api/internal/models"
)

// TransactionRepository handles persistence for the transactions table.
// Ledger entries are append-only: there is no update, and deletion only
// happens as the explicit cascade step when an account is closed.
type TransactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		transaction.ID, transaction.AccountID, transaction.Amount,
		transaction.Description, transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListByAccountID returns all ledger entries for an account, oldest first.
// The sort key is explicit so callers can rely on the ordering.
func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID string) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, amount, description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// DeleteByAccountID removes all ledger entries for an account. Only called
// from the close-account unit of work.
func (r *TransactionRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}
