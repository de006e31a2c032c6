package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	AccountRegistered = "account.registered"
	AccountClosed     = "account.closed"

	TransactionCreated = "transaction.created"
	BalanceUpdated     = "balance.updated"
)

// Stream names
const (
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountRegisteredEvent struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
}

type AccountClosedEvent struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
}

// Transaction events
type TransactionCreatedEvent struct {
	TransactionID string          `json:"transactionId"`
	AccountID     string          `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

type BalanceUpdatedEvent struct {
	AccountID  string          `json:"accountId"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Change     decimal.Decimal `json:"change"`
}
