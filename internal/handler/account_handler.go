package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/harborbank/bank-api/internal/bank"
	"github.com/harborbank/bank-api/internal/cqrs"
	"github.com/harborbank/bank-api/internal/middleware"
	"github.com/harborbank/bank-api/internal/models"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	RegisterAccount(cqrs.RegisterAccountCommand) (*models.Account, error)
	Deposit(cqrs.DepositCommand) (*models.AccountView, error)
	Withdraw(cqrs.WithdrawCommand) (*models.AccountView, error)
	Transfer(cqrs.TransferCommand) (*models.AccountView, error)
	CloseAccount(cqrs.CloseAccountCommand) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccountByUsername(cqrs.GetAccountQuery) (*models.AccountView, error)
	GetTransactionHistory(cqrs.TransactionHistoryQuery) ([]models.TransactionView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type TransferRequest struct {
	ToUsername string          `json:"toUsername" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
}

type TransactionListResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.RegisterAccount(cqrs.RegisterAccountCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, bank.ErrDuplicateUsername) {
			middleware.RespondWithError(c, http.StatusConflict, "Username already exists")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register account")
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	username, _ := middleware.GetUsername(c)

	view, err := h.queries.GetAccountByUsername(cqrs.GetAccountQuery{Username: username})
	if err != nil {
		if errors.Is(err, bank.ErrAccountNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	accountID, _ := middleware.GetAccountID(c)

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.Deposit(cqrs.DepositCommand{
		AccountID: accountID,
		Amount:    req.Amount,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	accountID, _ := middleware.GetAccountID(c)

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.Withdraw(cqrs.WithdrawCommand{
		AccountID: accountID,
		Amount:    req.Amount,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) Transfer(c *gin.Context) {
	accountID, _ := middleware.GetAccountID(c)

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.Transfer(cqrs.TransferCommand{
		FromAccountID: accountID,
		ToUsername:    req.ToUsername,
		Amount:        req.Amount,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to transfer")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) ListTransactions(c *gin.Context) {
	accountID, _ := middleware.GetAccountID(c)

	views, err := h.queries.GetTransactionHistory(cqrs.TransactionHistoryQuery{AccountID: accountID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Transactions: views})
}

func (h *AccountHandler) CloseAccount(c *gin.Context) {
	accountID, _ := middleware.GetAccountID(c)

	if err := h.commands.CloseAccount(cqrs.CloseAccountCommand{AccountID: accountID}); err != nil {
		if errors.Is(err, bank.ErrAccountNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to close account")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondWithDomainError maps the enumerated domain failures onto HTTP
// status codes.
func respondWithDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusBadRequest, "Amount must be greater than zero")
	case errors.Is(err, bank.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Insufficient funds")
	case errors.Is(err, bank.ErrRecipientNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Recipient account not found")
	case errors.Is(err, bank.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
