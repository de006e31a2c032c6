// Package bank defines the domain errors of the banking core. They are
// business-level failures, not system errors; the HTTP layer maps each one
// to a status code. Matched with errors.Is.
package bank

import "errors"

var (
	// ErrDuplicateUsername indicates a registration with a username that
	// is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAccountNotFound indicates the account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrRecipientNotFound indicates a transfer to a username that does
	// not resolve to an account.
	ErrRecipientNotFound = errors.New("recipient account not found")

	// ErrInvalidAmount indicates a non-positive amount on a deposit,
	// withdrawal or transfer.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds indicates a withdrawal or transfer exceeding
	// the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPrincipalNotFound indicates a login for a username with no
	// stored account.
	ErrPrincipalNotFound = errors.New("username or password not found")
)
