package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dnc-ph/clinic-backend/internal/auth"
)

func newTokenService(t *testing.T, cfg auth.TokenConfig) *auth.TokenService {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = "middleware-test-secret"
	}
	svc, err := auth.NewTokenService(cfg)
	require.NoError(t, err)
	return svc
}

func authRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Auth(tokens), func(c *gin.Context) {
		userID, _ := UserID(c)
		roleID, _ := RoleID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"role_id": roleID,
			"email":   Email(c),
		})
	})
	return r
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tokens := newTokenService(t, auth.TokenConfig{})
	token, err := tokens.Issue(42, "dentist@dnc.com.ph", 7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authRouter(tokens).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UserID uint   `json:"user_id"`
		RoleID uint   `json:"role_id"`
		Email  string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, uint(42), body.UserID)
	require.Equal(t, uint(7), body.RoleID)
	require.Equal(t, "dentist@dnc.com.ph", body.Email)
}

func TestAuthMiddlewareRejectsBadRequests(t *testing.T) {
	tokens := newTokenService(t, auth.TokenConfig{})
	valid, err := tokens.Issue(1, "admin@dnc.com.ph", 1)
	require.NoError(t, err)

	otherSecret := newTokenService(t, auth.TokenConfig{Secret: "a-different-secret"})
	forged, err := otherSecret.Issue(1, "admin@dnc.com.ph", 1)
	require.NoError(t, err)

	past := func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, err := newTokenService(t, auth.TokenConfig{Clock: past}).Issue(1, "admin@dnc.com.ph", 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + valid},
		{"bare token", valid},
		{"garbage token", "Bearer not.a.token"},
		{"forged signature", "Bearer " + forged},
		{"expired token", "Bearer " + expired},
	}

	router := authRouter(tokens)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Contains(t, w.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestAuthMiddlewareCaseInsensitiveScheme(t *testing.T) {
	tokens := newTokenService(t, auth.TokenConfig{})
	token, err := tokens.Issue(5, "staff@dnc.com.ph", 2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()
	authRouter(tokens).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
