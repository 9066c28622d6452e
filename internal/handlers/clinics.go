package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// ClinicHandler exposes the accredited clinic registry endpoints.
type ClinicHandler struct {
	service *services.ClinicService
}

// NewClinicHandler constructs a ClinicHandler.
func NewClinicHandler(service *services.ClinicService) *ClinicHandler {
	return &ClinicHandler{service: service}
}

type clinicRequest struct {
	Name           string `json:"name" validate:"max=128"`
	OwnerName      string `json:"owner_name" validate:"max=128"`
	Address        string `json:"address" validate:"max=255"`
	ZipCode        string `json:"zip_code" validate:"max=16"`
	Schedule       string `json:"schedule" validate:"max=255"`
	ContactNumbers string `json:"contact_numbers" validate:"max=255"`
	Email          string `json:"email" validate:"omitempty,email"`
	Remarks        string `json:"remarks" validate:"max=1024"`
	Active         *bool  `json:"active"`
}

func (r clinicRequest) input(actor string) services.ClinicInput {
	return services.ClinicInput{
		Name:           r.Name,
		OwnerName:      r.OwnerName,
		Address:        r.Address,
		ZipCode:        r.ZipCode,
		Schedule:       r.Schedule,
		ContactNumbers: r.ContactNumbers,
		Email:          r.Email,
		Remarks:        r.Remarks,
		Active:         r.Active,
		Actor:          actor,
	}
}

// GET /api/dental-clinics
func (h *ClinicHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "page_size", 20)

	clinics, total, err := h.service.List(c.Request.Context(), services.ListClinicOptions{
		Page:     page,
		PageSize: perPage,
		Query:    c.Query("q"),
		Active:   parseBoolQuery(c, "active"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, clinics, response.NewMeta(page, perPage, total))
}

// GET /api/dental-clinics/:id
func (h *ClinicHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	clinic, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, clinic)
}

// POST /api/dental-clinics
func (h *ClinicHandler) Create(c *gin.Context) {
	var req clinicRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clinic, err := h.service.Create(c.Request.Context(), req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, clinic)
}

// PUT /api/dental-clinics/:id
func (h *ClinicHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req clinicRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clinic, err := h.service.Update(c.Request.Context(), id, req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, clinic)
}

// DELETE /api/dental-clinics/:id
func (h *ClinicHandler) Delete(c *gin.Context) {
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
