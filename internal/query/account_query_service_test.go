package query_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/harborbank/bank-api/internal/bank"
	"github.com/harborbank/bank-api/internal/command"
	"github.com/harborbank/bank-api/internal/cqrs"
	"github.com/harborbank/bank-api/internal/query"
	"github.com/harborbank/bank-api/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newServices(t *testing.T) (*command.AccountCommandService, *query.AccountQueryService) {
	t.Helper()
	store := testutil.NewSQLiteStore(t)
	return command.NewAccountCommandService(store, nil, nil, nil),
		query.NewAccountQueryService(store, nil, nil)
}

func TestGetAccountByUsername(t *testing.T) {
	commands, queries := newServices(t)

	account, err := commands.RegisterAccount(cqrs.RegisterAccountCommand{Username: "alice", Password: "hunter2hunter2"})
	require.NoError(t, err)

	view, err := queries.GetAccountByUsername(cqrs.GetAccountQuery{Username: "alice"})
	require.NoError(t, err)
	require.Equal(t, account.ID, view.ID)
	require.Equal(t, "alice", view.Username)
	require.True(t, view.Balance.Equal(decimal.Zero))
}

func TestGetAccountByUsername_NotFound(t *testing.T) {
	_, queries := newServices(t)

	_, err := queries.GetAccountByUsername(cqrs.GetAccountQuery{Username: "nobody"})
	require.ErrorIs(t, err, bank.ErrAccountNotFound)
}

func TestGetTransactionHistory(t *testing.T) {
	commands, queries := newServices(t)

	account, err := commands.RegisterAccount(cqrs.RegisterAccountCommand{Username: "alice", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = commands.Deposit(cqrs.DepositCommand{AccountID: account.ID, Amount: dec("100")})
	require.NoError(t, err)
	_, err = commands.Withdraw(cqrs.WithdrawCommand{AccountID: account.ID, Amount: dec("30")})
	require.NoError(t, err)

	views, err := queries.GetTransactionHistory(cqrs.TransactionHistoryQuery{AccountID: account.ID})
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "Deposit", views[0].Description)
	require.Equal(t, "Withdrawal", views[1].Description)
	require.True(t, views[0].Amount.Equal(dec("100")))
	require.True(t, views[1].Amount.Equal(dec("30")))
}

func TestGetTransactionHistory_EmptyAccount(t *testing.T) {
	commands, queries := newServices(t)

	account, err := commands.RegisterAccount(cqrs.RegisterAccountCommand{Username: "alice", Password: "hunter2hunter2"})
	require.NoError(t, err)

	views, err := queries.GetTransactionHistory(cqrs.TransactionHistoryQuery{AccountID: account.ID})
	require.NoError(t, err)
	require.Empty(t, views)
}
