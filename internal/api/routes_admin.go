package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/handlers"
	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/internal/permissions"
	"github.com/dnc-ph/clinic-backend/internal/services"
)

// registerAdminRoutes mounts account, role, grant, catalog, and audit
// endpoints. Role and grant management are both guarded by the
// role_permission resource: editing a role's sheet is the sensitive act.
func registerAdminRoutes(api *gin.RouterGroup, db *gorm.DB, authorizer *permissions.Authorizer, userService *services.UserService, audit *services.AuditService) error {
	roleService, err := services.NewRoleService(db, audit)
	if err != nil {
		return err
	}
	grantService, err := services.NewGrantService(db, audit)
	if err != nil {
		return err
	}
	dataObjectService, err := services.NewDataObjectService(db, audit)
	if err != nil {
		return err
	}

	guard := func(resource string, action models.Action) gin.HandlerFunc {
		return middleware.RequirePermissionAudited(authorizer, audit, resource, action)
	}

	userHandler := handlers.NewUserHandler(userService)
	users := api.Group("/users")
	{
		users.GET("", guard("user", models.ActionRead), userHandler.List)
		users.GET("/:id", guard("user", models.ActionRead), userHandler.Get)
		users.POST("", guard("user", models.ActionCreate), userHandler.Create)
		users.PUT("/:id", guard("user", models.ActionUpdate), userHandler.Update)
		users.PUT("/:id/password", guard("user", models.ActionUpdate), userHandler.SetPassword)
		users.DELETE("/:id", guard("user", models.ActionDelete), userHandler.Delete)
	}

	roleHandler := handlers.NewRoleHandler(roleService, grantService)
	roles := api.Group("/roles")
	{
		roles.GET("", guard("role", models.ActionRead), roleHandler.List)
		roles.GET("/:id", guard("role", models.ActionRead), roleHandler.Get)
		roles.POST("", guard("role", models.ActionCreate), roleHandler.Create)
		roles.PUT("/:id", guard("role", models.ActionUpdate), roleHandler.Update)
		roles.DELETE("/:id", guard("role", models.ActionDelete), roleHandler.Delete)

		roles.GET("/:id/grants", guard("role_permission", models.ActionRead), roleHandler.ListGrants)
		roles.POST("/:id/grants", guard("role_permission", models.ActionUpdate), roleHandler.SetGrant)
		roles.PUT("/:id/grants", guard("role_permission", models.ActionUpdate), roleHandler.ReplaceGrants)
	}

	dataObjectHandler := handlers.NewDataObjectHandler(dataObjectService)
	objects := api.Group("/data-objects")
	{
		objects.GET("", guard("dataobject", models.ActionRead), dataObjectHandler.List)
		objects.POST("", guard("dataobject", models.ActionCreate), dataObjectHandler.Register)
	}

	auditHandler := handlers.NewAuditHandler(audit)
	api.GET("/audit-logs", guard("user", models.ActionRead), auditHandler.List)

	return nil
}
