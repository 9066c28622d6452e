package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/dnc-ph/clinic-backend/internal/auth"
	"github.com/dnc-ph/clinic-backend/pkg/errors"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

const (
	CtxClaimsKey = "authClaims"
	CtxUserIDKey = "userID"
	CtxRoleIDKey = "roleID"
	CtxEmailKey  = "userEmail"
)

// Auth enforces bearer-token authentication. Missing, malformed, expired,
// and badly signed tokens all produce the same 401 so the response carries
// no oracle signal.
func Auth(tokens *iauth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := tokens.Validate(token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, userID)
		c.Set(CtxRoleIDKey, claims.RoleID)
		c.Set(CtxEmailKey, claims.Email)

		c.Next()
	}
}

// RoleID returns the authenticated role id placed by Auth.
func RoleID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxRoleIDKey)
	if !ok {
		return 0, false
	}
	roleID, ok := v.(uint)
	return roleID, ok
}

// UserID returns the authenticated user id placed by Auth.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

// Email returns the authenticated email placed by Auth.
func Email(c *gin.Context) string {
	v, ok := c.Get(CtxEmailKey)
	if !ok {
		return ""
	}
	email, _ := v.(string)
	return email
}
