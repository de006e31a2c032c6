package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/harborbank/bank-api/internal/bank"
	"github.com/harborbank/bank-api/internal/models"
	"github.com/harborbank/bank-api/internal/repository"
	"github.com/harborbank/bank-api/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newAccount(id, username string, balance string) *models.Account {
	now := time.Now().UTC()
	return &models.Account{
		ID:           id,
		Username:     username,
		PasswordHash: "x",
		Balance:      dec(balance),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	account := newAccount("acc-1", "alice", "0")
	require.NoError(t, store.Accounts.Create(ctx, account))

	byID, err := store.Accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.True(t, byID.Balance.Equal(decimal.Zero))

	byUsername, err := store.Accounts.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "acc-1", byUsername.ID)

	_, err = store.Accounts.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, bank.ErrAccountNotFound)

	_, err = store.Accounts.GetByID(ctx, "acc-404")
	require.ErrorIs(t, err, bank.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateUsername(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Accounts.Create(ctx, newAccount("acc-1", "alice", "0")))
	err := store.Accounts.Create(ctx, newAccount("acc-2", "alice", "0"))
	require.ErrorIs(t, err, bank.ErrDuplicateUsername)
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Accounts.Create(ctx, newAccount("acc-1", "alice", "10.50")))
	require.NoError(t, store.Accounts.UpdateBalance(ctx, "acc-1", dec("99.25"), time.Now().UTC()))

	account, err := store.Accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(dec("99.25")), "got %s", account.Balance)

	err = store.Accounts.UpdateBalance(ctx, "acc-404", dec("1"), time.Now().UTC())
	require.ErrorIs(t, err, bank.ErrAccountNotFound)
}

func TestTransactionRepository_ListOrder(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Accounts.Create(ctx, newAccount("acc-1", "alice", "0")))

	base := time.Now().UTC().Truncate(time.Second)
	for i := 3; i >= 1; i-- {
		entry := &models.Transaction{
			ID:          fmt.Sprintf("tan-%d", i),
			AccountID:   "acc-1",
			Amount:      dec("1"),
			Description: "Deposit",
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.Transactions.Create(ctx, entry))
	}

	entries, err := store.Transactions.ListByAccountID(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		require.Equal(t, fmt.Sprintf("tan-%d", i+1), entry.ID)
	}

	none, err := store.Transactions.ListByAccountID(ctx, "acc-404")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestTransactionRepository_DeleteByAccountID(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Accounts.Create(ctx, newAccount("acc-1", "alice", "0")))
	require.NoError(t, store.Transactions.Create(ctx, &models.Transaction{
		ID: "tan-1", AccountID: "acc-1", Amount: dec("5"), Description: "Deposit", CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, store.Transactions.DeleteByAccountID(ctx, "acc-1"))

	entries, err := store.Transactions.ListByAccountID(ctx, "acc-1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStore_ExecTx_RollsBackOnError(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Accounts.Create(ctx, newAccount("acc-1", "alice", "100")))

	boom := fmt.Errorf("boom")
	err := store.ExecTx(ctx, func(r *repository.Repositories) error {
		if err := r.Accounts.UpdateBalance(ctx, "acc-1", dec("40"), time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Transactions.Create(ctx, &models.Transaction{
			ID: "tan-1", AccountID: "acc-1", Amount: dec("60"), Description: "Withdrawal", CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Neither the balance update nor the ledger entry survived.
	account, err := store.Accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(dec("100")), "got %s", account.Balance)

	entries, err := store.Transactions.ListByAccountID(ctx, "acc-1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStore_ExecTx_Commits(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Accounts.Create(ctx, newAccount("acc-1", "alice", "0")))

	err := store.ExecTx(ctx, func(r *repository.Repositories) error {
		if err := r.Accounts.UpdateBalance(ctx, "acc-1", dec("25"), time.Now().UTC()); err != nil {
			return err
		}
		return r.Transactions.Create(ctx, &models.Transaction{
			ID: "tan-1", AccountID: "acc-1", Amount: dec("25"), Description: "Deposit", CreatedAt: time.Now().UTC(),
		})
	})
	require.NoError(t, err)

	account, err := store.Accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(dec("25")))

	entries, err := store.Transactions.ListByAccountID(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Deposit", entries[0].Description)
}
