package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/harborbank/bank-api/internal/auth"
)

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("test-secret")

	token, err := auth.GenerateToken(secret, "acc-001", "alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	otherToken, err := auth.GenerateToken([]byte("other-secret"), "acc-001", "alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "success - valid bearer token",
			authHeader:     "Bearer " + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthorized - missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unauthorized - malformed header",
			authHeader:     "Token " + token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unauthorized - token signed with wrong secret",
			authHeader:     "Bearer " + otherToken,
			expectedStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.GET("/protected", AuthMiddleware(secret), func(c *gin.Context) {
				accountID, ok := GetAccountID(c)
				if !ok || accountID != "acc-001" {
					t.Errorf("expected accountId acc-001 in context, got %q", accountID)
				}
				username, ok := GetUsername(c)
				if !ok || username != "alice" {
					t.Errorf("expected username alice in context, got %q", username)
				}
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
