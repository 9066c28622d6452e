package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/internal/permissions"
	"github.com/dnc-ph/clinic-backend/pkg/errors"
	"github.com/dnc-ph/clinic-backend/pkg/logger"
	"github.com/dnc-ph/clinic-backend/pkg/metrics"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// DenialLogger records authorization denials for the audit trail. The
// middleware treats it as fire-and-forget.
type DenialLogger interface {
	LogDenial(ctx context.Context, email, resource, action, ip, requestID string)
}

// RequirePermission gates a route on the authenticated role holding an
// active grant for (resource, action). A storage error during the check is
// a 500, never a silent allow or deny: the check fails closed but is
// reported as an internal fault, distinct from an explicit denial.
func RequirePermission(authorizer *permissions.Authorizer, resource string, action models.Action) gin.HandlerFunc {
	return RequirePermissionAudited(authorizer, nil, resource, action)
}

// RequirePermissionAudited behaves like RequirePermission and additionally
// records every denial with the supplied logger.
func RequirePermissionAudited(authorizer *permissions.Authorizer, denials DenialLogger, resource string, action models.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, ok := RoleID(c)
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := authorizer.RoleHasPermission(c.Request.Context(), roleID, resource, action)
		if err != nil {
			metrics.PermissionChecks.WithLabelValues(resource, string(action), "error").Inc()
			logger.WithModule("authz").Error("permission check failed",
				zap.Uint("role_id", roleID),
				zap.String("resource", resource),
				zap.String("action", string(action)),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"code": errors.ErrInternalServer.Code, "message": "permission check failed"},
			})
			return
		}
		if !allowed {
			metrics.PermissionChecks.WithLabelValues(resource, string(action), "denied").Inc()
			if denials != nil {
				denials.LogDenial(c.Request.Context(), Email(c), resource, string(action), c.ClientIP(), GetRequestID(c))
			}
			response.Error(c, errors.ErrForbidden)
			c.Abort()
			return
		}

		metrics.PermissionChecks.WithLabelValues(resource, string(action), "allowed").Inc()
		c.Next()
	}
}
