package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/dnc-ph/clinic-backend/internal/auth"
	"github.com/dnc-ph/clinic-backend/internal/handlers"
	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/permissions"
	"github.com/dnc-ph/clinic-backend/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers every
// route. The login endpoint is the only business route outside the
// authenticated group; everything else sits behind the bearer token and a
// per-route permission guard.
func NewRouter(db *gorm.DB, tokens *iauth.TokenService) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service must be provided")
	}

	authorizer, err := permissions.NewAuthorizer(db)
	if err != nil {
		return nil, err
	}

	audit, err := services.NewAuditService(db)
	if err != nil {
		return nil, err
	}
	users, err := services.NewUserService(db, audit)
	if err != nil {
		return nil, err
	}
	authenticator, err := iauth.NewAuthenticator(db, tokens, authorizer)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.NoRoute(middleware.NotFoundHandler)

	r.GET("/health", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler, err := handlers.NewAuthHandler(authenticator, authorizer, users, audit)
	if err != nil {
		return nil, err
	}

	// Public auth routes
	r.POST("/api/auth/login", authHandler.Login)

	// Everything below requires a valid bearer token.
	protected := r.Group("/api")
	protected.Use(middleware.Auth(tokens))
	protected.GET("/auth/me", authHandler.Me)

	if err := registerAdminRoutes(protected, db, authorizer, users, audit); err != nil {
		return nil, err
	}
	if err := registerClinicRoutes(protected, db, authorizer, audit); err != nil {
		return nil, err
	}

	return r, nil
}
