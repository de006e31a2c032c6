package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/harborbank/bank-api/internal/bank"
	"github.com/harborbank/bank-api/internal/cache"
	"github.com/harborbank/bank-api/internal/cqrs"
	"github.com/harborbank/bank-api/internal/events"
	"github.com/harborbank/bank-api/internal/models"
	"github.com/harborbank/bank-api/internal/repository"
	"github.com/harborbank/bank-api/internal/utils"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "command").Logger()

// EventPublisher is the write side's outbound event contract.
// *events.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountCommandService owns every balance mutation. Each mutating operation
// runs inside one Store.ExecTx unit of work: the balance update and its
// ledger entry (two of each for transfers) commit or roll back together.
// The publisher and caches are optional collaborators; when nil the service
// still upholds the same semantics.
type AccountCommandService struct {
	store        *repository.Store
	publisher    EventPublisher
	accountCache *cache.ViewCache[models.AccountView]
	historyCache *cache.ViewCache[[]models.TransactionView]
}

func NewAccountCommandService(
	store *repository.Store,
	publisher EventPublisher,
	accountCache *cache.ViewCache[models.AccountView],
	historyCache *cache.ViewCache[[]models.TransactionView],
) *AccountCommandService {
	return &AccountCommandService{
		store:        store,
		publisher:    publisher,
		accountCache: accountCache,
		historyCache: historyCache,
	}
}

// RegisterAccount creates an account with a zero balance and a bcrypt
// password hash. The username pre-check catches the common case; the unique
// index on username catches a concurrent register, so either way the caller
// sees bank.ErrDuplicateUsername.
func (s *AccountCommandService) RegisterAccount(cmd cqrs.RegisterAccountCommand) (*models.Account, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	ctx := context.Background()

	if _, err := s.store.Accounts.GetByUsername(ctx, cmd.Username); err == nil {
		return nil, bank.ErrDuplicateUsername
	} else if !errors.Is(err, bank.ErrAccountNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:           utils.GenerateID("acc"),
		Username:     cmd.Username,
		PasswordHash: passwordHash,
		Balance:      decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.accountCache.Set(ctx, cache.AccountKey(account.Username), accountToView(account))
	s.publish(ctx, events.AccountEventsStream, events.AccountRegistered, events.AccountRegisteredEvent{
		AccountID: account.ID,
		Username:  account.Username,
	})
	return account, nil
}

// Deposit adds amount to the account balance and appends a "Deposit" ledger
// entry, atomically. No upper bound is enforced.
func (s *AccountCommandService) Deposit(cmd cqrs.DepositCommand) (*models.AccountView, error) {
	if !cmd.Amount.IsPositive() {
		return nil, bank.ErrInvalidAmount
	}
	ctx := context.Background()

	var account *models.Account
	var entry *models.Transaction
	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		a, err := r.Accounts.GetByID(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		a.Balance = a.Balance.Add(cmd.Amount)
		a.UpdatedAt = now
		if err := r.Accounts.UpdateBalance(ctx, a.ID, a.Balance, now); err != nil {
			return err
		}
		t := &models.Transaction{
			ID:          utils.GenerateID("tan"),
			AccountID:   a.ID,
			Amount:      cmd.Amount,
			Description: "Deposit",
			CreatedAt:   now,
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}
		account, entry = a, t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, account, entry, cmd.Amount)
	return accountToView(account), nil
}

// Withdraw subtracts amount from the account balance and appends a
// "Withdrawal" ledger entry, atomically. The funds check runs against the
// committed balance read inside the transaction, not the caller's view.
func (s *AccountCommandService) Withdraw(cmd cqrs.WithdrawCommand) (*models.AccountView, error) {
	if !cmd.Amount.IsPositive() {
		return nil, bank.ErrInvalidAmount
	}
	ctx := context.Background()

	var account *models.Account
	var entry *models.Transaction
	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		a, err := r.Accounts.GetByID(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		logger.Info().Str("account", a.ID).Str("balance", a.Balance.String()).Msg("current balance")
		if a.Balance.LessThan(cmd.Amount) {
			return bank.ErrInsufficientFunds
		}
		now := time.Now().UTC()
		a.Balance = a.Balance.Sub(cmd.Amount)
		a.UpdatedAt = now
		if err := r.Accounts.UpdateBalance(ctx, a.ID, a.Balance, now); err != nil {
			return err
		}
		logger.Info().Str("account", a.ID).Str("balance", a.Balance.String()).Msg("new balance after withdrawal")
		t := &models.Transaction{
			ID:          utils.GenerateID("tan"),
			AccountID:   a.ID,
			Amount:      cmd.Amount,
			Description: "Withdrawal",
			CreatedAt:   now,
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}
		account, entry = a, t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, account, entry, cmd.Amount.Neg())
	return accountToView(account), nil
}

// Transfer moves amount from the sender to the account owning ToUsername.
// Preconditions are checked in order: positive amount, sufficient funds,
// resolvable recipient. All four effects — two balance updates and two
// ledger entries — commit or none do. Both ledger entries share one captured
// timestamp.
func (s *AccountCommandService) Transfer(cmd cqrs.TransferCommand) (*models.AccountView, error) {
	if !cmd.Amount.IsPositive() {
		return nil, bank.ErrInvalidAmount
	}
	ctx := context.Background()

	var from, to *models.Account
	var debit, credit *models.Transaction
	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		f, err := r.Accounts.GetByID(ctx, cmd.FromAccountID)
		if err != nil {
			return err
		}
		if f.Balance.LessThan(cmd.Amount) {
			return bank.ErrInsufficientFunds
		}
		t, err := r.Accounts.GetByUsername(ctx, cmd.ToUsername)
		if errors.Is(err, bank.ErrAccountNotFound) {
			return bank.ErrRecipientNotFound
		}
		if err != nil {
			return err
		}
		// A self-transfer debits and credits the same row; share the loaded
		// entity so the credit does not overwrite the debit.
		if t.ID == f.ID {
			t = f
		}

		now := time.Now().UTC()
		f.Balance = f.Balance.Sub(cmd.Amount)
		f.UpdatedAt = now
		if err := r.Accounts.UpdateBalance(ctx, f.ID, f.Balance, now); err != nil {
			return err
		}
		t.Balance = t.Balance.Add(cmd.Amount)
		t.UpdatedAt = now
		if err := r.Accounts.UpdateBalance(ctx, t.ID, t.Balance, now); err != nil {
			return err
		}

		d := &models.Transaction{
			ID:          utils.GenerateID("tan"),
			AccountID:   f.ID,
			Amount:      cmd.Amount,
			Description: "Transfer Out to " + t.Username,
			CreatedAt:   now,
		}
		if err := r.Transactions.Create(ctx, d); err != nil {
			return err
		}
		c := &models.Transaction{
			ID:          utils.GenerateID("tan"),
			AccountID:   t.ID,
			Amount:      cmd.Amount,
			Description: "Transfer In from " + f.Username,
			CreatedAt:   now,
		}
		if err := r.Transactions.Create(ctx, c); err != nil {
			return err
		}
		from, to, debit, credit = f, t, d, c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, from, debit, cmd.Amount.Neg())
	if to.ID != from.ID {
		s.afterMutation(ctx, to, credit, cmd.Amount)
	}
	return accountToView(from), nil
}

// CloseAccount removes the account and its ledger entries. The cascade is an
// explicit step inside the same unit of work, not an implicit object-graph
// delete.
func (s *AccountCommandService) CloseAccount(cmd cqrs.CloseAccountCommand) error {
	ctx := context.Background()

	var account *models.Account
	err := s.store.ExecTx(ctx, func(r *repository.Repositories) error {
		a, err := r.Accounts.GetByID(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if err := r.Transactions.DeleteByAccountID(ctx, a.ID); err != nil {
			return err
		}
		if err := r.Accounts.Delete(ctx, a.ID); err != nil {
			return err
		}
		account = a
		return nil
	})
	if err != nil {
		return err
	}

	s.accountCache.Delete(ctx, cache.AccountKey(account.Username))
	s.historyCache.Delete(ctx, cache.HistoryKey(account.ID))
	s.publish(ctx, events.AccountEventsStream, events.AccountClosed, events.AccountClosedEvent{
		AccountID: account.ID,
		Username:  account.Username,
	})
	return nil
}

// afterMutation refreshes the read-side caches and emits events for one
// committed balance change. Runs post-commit; failures here never undo the
// mutation. change is signed: negative for withdrawals and transfer-outs.
func (s *AccountCommandService) afterMutation(ctx context.Context, account *models.Account, entry *models.Transaction, change decimal.Decimal) {
	s.accountCache.Set(ctx, cache.AccountKey(account.Username), accountToView(account))
	s.historyCache.Delete(ctx, cache.HistoryKey(account.ID))
	s.publish(ctx, events.TransactionEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: entry.ID,
		AccountID:     account.ID,
		Amount:        entry.Amount,
		Description:   entry.Description,
	})
	s.publish(ctx, events.AccountEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  account.ID,
		NewBalance: account.Balance,
		Change:     change,
	})
}

func (s *AccountCommandService) publish(ctx context.Context, stream, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, stream, eventType, data); err != nil {
		logger.Error().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

// accountToView converts the write model to the read view model.
func accountToView(a *models.Account) *models.AccountView {
	return &models.AccountView{
		ID:        a.ID,
		Username:  a.Username,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
