package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// HMOHandler exposes the HMO registry endpoints.
type HMOHandler struct {
	service *services.HMOService
}

// NewHMOHandler constructs an HMOHandler.
func NewHMOHandler(service *services.HMOService) *HMOHandler {
	return &HMOHandler{service: service}
}

type hmoRequest struct {
	ShortName        string `json:"short_name" validate:"max=64"`
	LongName         string `json:"long_name" validate:"max=255"`
	Address          string `json:"address" validate:"max=255"`
	TaxAccountNumber string `json:"tax_account_number" validate:"max=64"`
	ContactNos       string `json:"contact_nos" validate:"max=255"`
	Active           *bool  `json:"active"`
}

func (r hmoRequest) input(actor string) services.HMOInput {
	return services.HMOInput{
		ShortName:        r.ShortName,
		LongName:         r.LongName,
		Address:          r.Address,
		TaxAccountNumber: r.TaxAccountNumber,
		ContactNos:       r.ContactNos,
		Active:           r.Active,
		Actor:            actor,
	}
}

// GET /api/hmos
func (h *HMOHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "page_size", 20)

	hmos, total, err := h.service.List(c.Request.Context(), services.ListHMOOptions{
		Page:     page,
		PageSize: perPage,
		Query:    c.Query("q"),
		Active:   parseBoolQuery(c, "active"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, hmos, response.NewMeta(page, perPage, total))
}

// GET /api/hmos/:id
func (h *HMOHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	hmo, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, hmo)
}

// POST /api/hmos
func (h *HMOHandler) Create(c *gin.Context) {
	var req hmoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	hmo, err := h.service.Create(c.Request.Context(), req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, hmo)
}

// PUT /api/hmos/:id
func (h *HMOHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req hmoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	hmo, err := h.service.Update(c.Request.Context(), id, req.input(middleware.Email(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, hmo)
}

// DELETE /api/hmos/:id
func (h *HMOHandler) Delete(c *gin.Context) {
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
