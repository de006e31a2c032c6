package cqrs

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by username.
type GetAccountQuery struct {
	Username string
}

// ---------- Transaction queries ----------

// TransactionHistoryQuery fetches all ledger entries for an account.
type TransactionHistoryQuery struct {
	AccountID string
}
