package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborbank/bank-api/internal/cqrs"
	"github.com/harborbank/bank-api/internal/middleware"
)

// Authenticator defines the login operation used by AuthHandler.
type Authenticator interface {
	Login(cqrs.LoginCommand) (string, error)
}

// AuthHandler handles login. There is no command service behind it: logging
// in mutates no application state.
type AuthHandler struct {
	auth Authenticator
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.auth.Login(cqrs.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}
