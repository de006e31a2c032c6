package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the write model for a bank account. Balance is a fixed-point
// decimal and must never go negative.
type Account struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdTimestamp"`
	UpdatedAt    time.Time       `json:"updatedTimestamp"`
}

// Transaction is one immutable ledger entry. Amount is always a positive
// magnitude; the direction and counterparty are encoded in Description
// ("Deposit", "Withdrawal", "Transfer Out to bob", "Transfer In from alice").
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdTimestamp"`
}
