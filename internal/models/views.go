package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountView is the read-optimised projection of an account.
// It never exposes PasswordHash.
type AccountView struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdTimestamp"`
	UpdatedAt time.Time       `json:"updatedTimestamp"`
}

// TransactionView is the read-optimised projection of a ledger entry.
type TransactionView struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdTimestamp"`
}

// Principal is the authentication-layer representation of an account,
// built at login time. It is a point-in-time projection: the balance and
// transaction list reflect the store at the moment it was loaded.
type Principal struct {
	AccountID    string            `json:"accountId"`
	Username     string            `json:"username"`
	PasswordHash string            `json:"-"`
	Balance      decimal.Decimal   `json:"balance"`
	Transactions []TransactionView `json:"transactions"`
	Authorities  []string          `json:"authorities"`
}
