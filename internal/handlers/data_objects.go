package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// DataObjectHandler exposes the protected-resource catalog.
type DataObjectHandler struct {
	service *services.DataObjectService
}

// NewDataObjectHandler constructs a DataObjectHandler.
func NewDataObjectHandler(service *services.DataObjectService) *DataObjectHandler {
	return &DataObjectHandler{service: service}
}

type registerDataObjectRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// GET /api/data-objects
func (h *DataObjectHandler) List(c *gin.Context) {
	catalog, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, catalog)
}

// POST /api/data-objects
func (h *DataObjectHandler) Register(c *gin.Context) {
	var req registerDataObjectRequest
	if !bindAndValidate(c, &req) {
		return
	}

	view, err := h.service.Register(c.Request.Context(), req.Name, middleware.Email(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view)
}
