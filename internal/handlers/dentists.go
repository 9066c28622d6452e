package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// DentistHandler exposes the practitioner registry endpoints.
type DentistHandler struct {
	service *services.DentistService
}

// NewDentistHandler constructs a DentistHandler.
func NewDentistHandler(service *services.DentistService) *DentistHandler {
	return &DentistHandler{service: service}
}

type dentistRequest struct {
	LastName      string `json:"last_name" validate:"max=64"`
	GivenName     string `json:"given_name" validate:"max=64"`
	MiddleInitial string `json:"middle_initial" validate:"max=4"`
	Email         string `json:"email" validate:"omitempty,email"`
	RetainerFee   string `json:"retainer_fee" validate:"max=32"`
	Active        *bool  `json:"active"`
}

func (r dentistRequest) input(actor string) services.DentistInput {
	return services.DentistInput{
		LastName:      r.LastName,
		GivenName:     r.GivenName,
		MiddleInitial: r.MiddleInitial,
		Email:         r.Email,
		RetainerFee:   r.RetainerFee,
		Active:        r.Active,
		Actor:         actor,
	}
}

// GET /api/dentists
func (h *DentistHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "page_size", 20)

	dentists, total, err := h.service.List(c.Request.Context(), services.ListDentistOptions{
		Page:     page,
		PageSize: perPage,
		Query:    c.Query("q"),
		Active:   parseBoolQuery(c, "active"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, dentists, response.NewMeta(page, perPage, total))
}

// GET /api/dentists/:id
func (h *DentistHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dentist, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dentist)
}

// POST /api/dentists
func (h *DentistHandler) Create(c *gin.Context) {
	var req dentistRequest
	if !bindAndValidate(c, &req) {
		return
	}
	dentist, err := h.service.Create(c.Request.Context(), req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dentist)
}

// PUT /api/dentists/:id
func (h *DentistHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dentistRequest
	if !bindAndValidate(c, &req) {
		return
	}
	dentist, err := h.service.Update(c.Request.Context(), id, req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dentist)
}

// DELETE /api/dentists/:id
func (h *DentistHandler) Delete(c *gin.Context) {
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
