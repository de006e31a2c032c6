package query

import (
	"context"

	"github.com/harborbank/bank-api/internal/cache"
	"github.com/harborbank/bank-api/internal/cqrs"
	"github.com/harborbank/bank-api/internal/models"
	"github.com/harborbank/bank-api/internal/repository"
)

// AccountQueryService serves account lookups and transaction history.
// Reads go through the redis view caches when present; the store is always
// the source of truth and caches are repopulated on miss.
type AccountQueryService struct {
	store        *repository.Store
	accountCache *cache.ViewCache[models.AccountView]
	historyCache *cache.ViewCache[[]models.TransactionView]
}

func NewAccountQueryService(
	store *repository.Store,
	accountCache *cache.ViewCache[models.AccountView],
	historyCache *cache.ViewCache[[]models.TransactionView],
) *AccountQueryService {
	return &AccountQueryService{
		store:        store,
		accountCache: accountCache,
		historyCache: historyCache,
	}
}

// GetAccountByUsername resolves the account view for a username, or
// bank.ErrAccountNotFound.
func (s *AccountQueryService) GetAccountByUsername(q cqrs.GetAccountQuery) (*models.AccountView, error) {
	ctx := context.Background()

	if view, ok := s.accountCache.Get(ctx, cache.AccountKey(q.Username)); ok {
		return view, nil
	}

	account, err := s.store.Accounts.GetByUsername(ctx, q.Username)
	if err != nil {
		return nil, err
	}
	view := &models.AccountView{
		ID:        account.ID,
		Username:  account.Username,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	s.accountCache.Set(ctx, cache.AccountKey(q.Username), view)
	return view, nil
}

// GetTransactionHistory returns every ledger entry owned by the account,
// ordered by creation time.
func (s *AccountQueryService) GetTransactionHistory(q cqrs.TransactionHistoryQuery) ([]models.TransactionView, error) {
	ctx := context.Background()

	if views, ok := s.historyCache.Get(ctx, cache.HistoryKey(q.AccountID)); ok {
		return *views, nil
	}

	transactions, err := s.store.Transactions.ListByAccountID(ctx, q.AccountID)
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
	s.historyCache.Set(ctx, cache.HistoryKey(q.AccountID), &views)
	return views, nil
}
