package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	iauth "github.com/dnc-ph/clinic-backend/internal/auth"
	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/permissions"
	"github.com/dnc-ph/clinic-backend/internal/services"
	apperrors "github.com/dnc-ph/clinic-backend/pkg/errors"
	"github.com/dnc-ph/clinic-backend/pkg/logger"
	"github.com/dnc-ph/clinic-backend/pkg/metrics"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// AuthHandler exposes the login flow and the authenticated identity probe.
type AuthHandler struct {
	authenticator *iauth.Authenticator
	authorizer    *permissions.Authorizer
	users         *services.UserService
	audit         *services.AuditService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authenticator *iauth.Authenticator, authorizer *permissions.Authorizer, users *services.UserService, audit *services.AuditService) (*AuthHandler, error) {
	if authenticator == nil {
		return nil, errors.New("auth handler: authenticator is required")
	}
	if authorizer == nil {
		return nil, errors.New("auth handler: authorizer is required")
	}
	if users == nil {
		return nil, errors.New("auth handler: user service is required")
	}
	return &AuthHandler{
		authenticator: authenticator,
		authorizer:    authorizer,
		users:         users,
		audit:         audit,
	}, nil
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	session, err := h.authenticator.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		h.recordLoginAudit(c, nil, req.Email, services.AuditResultFailure)

		switch {
		case errors.Is(err, iauth.ErrInvalidCredentials), errors.Is(err, iauth.ErrAccountDisabled):
			// One shared 401: the response must not reveal which check failed.
			response.Error(c, apperrors.ErrInvalidCredentials)
		default:
			logger.WithModule("auth").Error("login failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			response.Error(c, apperrors.ErrInternalServer)
		}
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	h.recordLoginAudit(c, &session.UserID, session.Email, services.AuditResultSuccess)

	response.Success(c, http.StatusOK, session)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	menu, err := h.authorizer.BuildMenuActivationMap(c.Request.Context(), user.RoleID)
	if err != nil {
		response.Error(c, apperrors.ErrInternalServer)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":                user,
		"menu_activation_map": menu,
	})
}

func (h *AuthHandler) recordLoginAudit(c *gin.Context, userID *uint, email, result string) {
	if h.audit == nil {
		return
	}
	_ = h.audit.Log(c.Request.Context(), services.AuditEntry{
		UserID:    userID,
		Email:     email,
		Action:    services.AuditActionLogin,
		Result:    result,
		IPAddress: c.ClientIP(),
		RequestID: middleware.GetRequestID(c),
	})
}
