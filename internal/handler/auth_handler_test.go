package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/harborbank/bank-api/internal/bank"
	"github.com/harborbank/bank-api/internal/cqrs"
)

type mockAuthenticator struct {
	loginFn func(cqrs.LoginCommand) (string, error)
}

func (m *mockAuthenticator) Login(cmd cqrs.LoginCommand) (string, error) {
	return m.loginFn(cmd)
}

func newAuthRouter(a Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(a)
	r.POST("/v1/auth/login", h.Login)
	return r
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		loginFn        func(cqrs.LoginCommand) (string, error)
		expectedStatus int
	}{
		{
			name: "success - valid credentials",
			body: map[string]interface{}{"username": "alice", "password": "hunter2hunter2"},
			loginFn: func(cmd cqrs.LoginCommand) (string, error) {
				return "signed.jwt.token", nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unauthorized - wrong password",
			body: map[string]interface{}{"username": "alice", "password": "wrong"},
			loginFn: func(cmd cqrs.LoginCommand) (string, error) {
				return "", bank.ErrPrincipalNotFound
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unauthorized - unknown username",
			body: map[string]interface{}{"username": "ghost", "password": "whatever"},
			loginFn: func(cmd cqrs.LoginCommand) (string, error) {
				return "", bank.ErrPrincipalNotFound
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bad request - missing password",
			body:           map[string]interface{}{"username": "alice"},
			loginFn:        nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(&mockAuthenticator{loginFn: tt.loginFn})
			w := doRequest(router, http.MethodPost, "/v1/auth/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	router := newAuthRouter(&mockAuthenticator{
		loginFn: func(cmd cqrs.LoginCommand) (string, error) {
			if cmd.Username != "alice" {
				t.Errorf("expected username alice, got %q", cmd.Username)
			}
			return "signed.jwt.token", nil
		},
	})

	w := doRequest(router, http.MethodPost, "/v1/auth/login",
		map[string]interface{}{"username": "alice", "password": "hunter2hunter2"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Errorf("expected token in response, got %q", resp.Token)
	}
}
