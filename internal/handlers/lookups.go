package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

type lookupRequest struct {
	Name        string `json:"name" validate:"max=128"`
	Description string `json:"description" validate:"max=255"`
	Active      *bool  `json:"active"`
}

func (r lookupRequest) input(actor string) services.LookupInput {
	return services.LookupInput{
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
		Actor:       actor,
	}
}

func lookupListOptions(c *gin.Context) (services.ListLookupOptions, int, int) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "page_size", 20)
	return services.ListLookupOptions{
		Page:     page,
		PageSize: perPage,
		Query:    c.Query("q"),
		Active:   parseBoolQuery(c, "active"),
	}, page, perPage
}

// DentalServiceHandler exposes the billable service catalog endpoints.
type DentalServiceHandler struct {
	service *services.DentalServiceService
}

// NewDentalServiceHandler constructs a DentalServiceHandler.
func NewDentalServiceHandler(service *services.DentalServiceService) *DentalServiceHandler {
	return &DentalServiceHandler{service: service}
}

// GET /api/dental-services
func (h *DentalServiceHandler) List(c *gin.Context) {
	opts, page, perPage := lookupListOptions(c)
	offerings, total, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, offerings, response.NewMeta(page, perPage, total))
}

// GET /api/dental-services/:id
func (h *DentalServiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offering, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offering)
}

// POST /api/dental-services
func (h *DentalServiceHandler) Create(c *gin.Context) {
	var req lookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	offering, err := h.service.Create(c.Request.Context(), req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, offering)
}

// PUT /api/dental-services/:id
func (h *DentalServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req lookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	offering, err := h.service.Update(c.Request.Context(), id, req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offering)
}

// DELETE /api/dental-services/:id
func (h *DentalServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// CapabilityHandler exposes the clinic capability catalog endpoints.
type CapabilityHandler struct {
	service *services.CapabilityService
}

// NewCapabilityHandler constructs a CapabilityHandler.
func NewCapabilityHandler(service *services.CapabilityService) *CapabilityHandler {
	return &CapabilityHandler{service: service}
}

// GET /api/clinic-capabilities
func (h *CapabilityHandler) List(c *gin.Context) {
	opts, page, perPage := lookupListOptions(c)
	capabilities, total, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, capabilities, response.NewMeta(page, perPage, total))
}

// GET /api/clinic-capabilities/:id
func (h *CapabilityHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	capability, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, capability)
}

// POST /api/clinic-capabilities
func (h *CapabilityHandler) Create(c *gin.Context) {
	var req lookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	capability, err := h.service.Create(c.Request.Context(), req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, capability)
}

// PUT /api/clinic-capabilities/:id
func (h *CapabilityHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req lookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	capability, err := h.service.Update(c.Request.Context(), id, req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, capability)
}

// DELETE /api/clinic-capabilities/:id
func (h *CapabilityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
