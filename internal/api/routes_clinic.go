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

// registerClinicRoutes mounts the clinic registry endpoints: HMOs,
// dentists, clinics, dental services, and capabilities.
func registerClinicRoutes(api *gin.RouterGroup, db *gorm.DB, authorizer *permissions.Authorizer, audit *services.AuditService) error {
	hmoService, err := services.NewHMOService(db)
	if err != nil {
		return err
	}
	dentistService, err := services.NewDentistService(db)
	if err != nil {
		return err
	}
	clinicService, err := services.NewClinicService(db)
	if err != nil {
		return err
	}
	dentalServiceService, err := services.NewDentalServiceService(db)
	if err != nil {
		return err
	}
	capabilityService, err := services.NewCapabilityService(db)
	if err != nil {
		return err
	}

	guard := func(resource string, action models.Action) gin.HandlerFunc {
		return middleware.RequirePermissionAudited(authorizer, audit, resource, action)
	}

	hmoHandler := handlers.NewHMOHandler(hmoService)
	hmos := api.Group("/hmos")
	{
		hmos.GET("", guard("hmo", models.ActionRead), hmoHandler.List)
		hmos.GET("/:id", guard("hmo", models.ActionRead), hmoHandler.Get)
		hmos.POST("", guard("hmo", models.ActionCreate), hmoHandler.Create)
		hmos.PUT("/:id", guard("hmo", models.ActionUpdate), hmoHandler.Update)
		hmos.DELETE("/:id", guard("hmo", models.ActionDelete), hmoHandler.Delete)
	}

	dentistHandler := handlers.NewDentistHandler(dentistService)
	dentists := api.Group("/dentists")
	{
		dentists.GET("", guard("dentist", models.ActionRead), dentistHandler.List)
		dentists.GET("/:id", guard("dentist", models.ActionRead), dentistHandler.Get)
		dentists.POST("", guard("dentist", models.ActionCreate), dentistHandler.Create)
		dentists.PUT("/:id", guard("dentist", models.ActionUpdate), dentistHandler.Update)
		dentists.DELETE("/:id", guard("dentist", models.ActionDelete), dentistHandler.Delete)
	}

	clinicHandler := handlers.NewClinicHandler(clinicService)
	clinics := api.Group("/dental-clinics")
	{
		clinics.GET("", guard("dental_clinic", models.ActionRead), clinicHandler.List)
		clinics.GET("/:id", guard("dental_clinic", models.ActionRead), clinicHandler.Get)
		clinics.POST("", guard("dental_clinic", models.ActionCreate), clinicHandler.Create)
		clinics.PUT("/:id", guard("dental_clinic", models.ActionUpdate), clinicHandler.Update)
		clinics.DELETE("/:id", guard("dental_clinic", models.ActionDelete), clinicHandler.Delete)
	}

	dentalServiceHandler := handlers.NewDentalServiceHandler(dentalServiceService)
	dentalServices := api.Group("/dental-services")
	{
		dentalServices.GET("", guard("dental_service", models.ActionRead), dentalServiceHandler.List)
		dentalServices.GET("/:id", guard("dental_service", models.ActionRead), dentalServiceHandler.Get)
		dentalServices.POST("", guard("dental_service", models.ActionCreate), dentalServiceHandler.Create)
		dentalServices.PUT("/:id", guard("dental_service", models.ActionUpdate), dentalServiceHandler.Update)
		dentalServices.DELETE("/:id", guard("dental_service", models.ActionDelete), dentalServiceHandler.Delete)
	}

	capabilityHandler := handlers.NewCapabilityHandler(capabilityService)
	capabilities := api.Group("/clinic-capabilities")
	{
		capabilities.GET("", guard("clinic_capability", models.ActionRead), capabilityHandler.List)
		capabilities.GET("/:id", guard("clinic_capability", models.ActionRead), capabilityHandler.Get)
		capabilities.POST("", guard("clinic_capability", models.ActionCreate), capabilityHandler.Create)
		capabilities.PUT("/:id", guard("clinic_capability", models.ActionUpdate), capabilityHandler.Update)
		capabilities.DELETE("/:id", guard("clinic_capability", models.ActionDelete), capabilityHandler.Delete)
	}

	return nil
}
