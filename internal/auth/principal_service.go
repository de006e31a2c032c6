package auth

import (
	"context"
	"errors"

	"github.com/harborbank/bank-api/internal/bank"
	"github.com/harborbank/bank-api/internal/cqrs"
	"github.com/harborbank/bank-api/internal/models"
	"github.com/harborbank/bank-api/internal/repository"
	"github.com/harborbank/bank-api/internal/utils"
)

// PrincipalService translates stored accounts into principals for the
// authentication layer. Read-only: nothing here mutates account state.
type PrincipalService struct {
	store     *repository.Store
	jwtSecret []byte
}

func NewPrincipalService(store *repository.Store, jwtSecret []byte) *PrincipalService {
	return &PrincipalService{store: store, jwtSecret: jwtSecret}
}

// LoadPrincipalByUsername resolves the account and materialises a principal
// from it, or fails with bank.ErrPrincipalNotFound. The projection is built
// fresh on every call — it reflects the store at this instant and is never
// cached, so a login always sees the committed balance.
func (s *PrincipalService) LoadPrincipalByUsername(username string) (*models.Principal, error) {
	ctx := context.Background()

	account, err := s.store.Accounts.GetByUsername(ctx, username)
	if errors.Is(err, bank.ErrAccountNotFound) {
		return nil, bank.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, err
	}

	transactions, err := s.store.Transactions.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	views := make([]models.TransactionView, len(transactions))
	for i, t := range transactions {
		views[i] = models.TransactionView{
			ID:          t.ID,
			AccountID:   t.AccountID,
			Amount:      t.Amount,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		}
	}

	return &models.Principal{
		AccountID:    account.ID,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Balance:      account.Balance,
		Transactions: views,
		Authorities:  authorities(),
	}, nil
}

// Login verifies the credentials against the stored hash and issues a
// session token. Lookup and password failures are indistinguishable to the
// caller.
func (s *PrincipalService) Login(cmd cqrs.LoginCommand) (string, error) {
	principal, err := s.LoadPrincipalByUsername(cmd.Username)
	if err != nil {
		return "", bank.ErrPrincipalNotFound
	}
	if !utils.CheckPassword(cmd.Password, principal.PasswordHash) {
		return "", bank.ErrPrincipalNotFound
	}
	return GenerateToken(s.jwtSecret, principal.AccountID, principal.Username)
}

// Every account holds the single fixed role.
func authorities() []string {
	return []string{"User"}
}
