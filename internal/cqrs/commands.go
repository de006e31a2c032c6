package cqrs

import "github.com/shopspring/decimal"

type RegisterAccountCommand struct {
	Username string
	Password string
}

type DepositCommand struct {
	AccountID string
	Amount    decimal.Decimal
}

type WithdrawCommand struct {
	AccountID string
	Amount    decimal.Decimal
}

type TransferCommand struct {
	FromAccountID string
	ToUsername    string
	Amount        decimal.Decimal
}

type CloseAccountCommand struct {
	AccountID string
}

type LoginCommand struct {
	Username string
	Password string
}
