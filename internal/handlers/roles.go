package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/middleware"
	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/internal/services"
	apperrors "github.com/dnc-ph/clinic-backend/pkg/errors"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// RoleHandler exposes role metadata and grant management endpoints.
type RoleHandler struct {
	roles  *services.RoleService
	grants *services.GrantService
}

// NewRoleHandler constructs a RoleHandler.
func NewRoleHandler(roles *services.RoleService, grants *services.GrantService) *RoleHandler {
	return &RoleHandler{roles: roles, grants: grants}
}

type createRoleRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=255"`
}

type updateRoleRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=64"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Active      *bool   `json:"active"`
}

type grantRequest struct {
	Resource string `json:"resource" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=create read update delete"`
	Active   *bool  `json:"active"`
}

type replaceGrantsRequest struct {
	Grants []struct {
		Resource string `json:"resource" validate:"required"`
		Action   string `json:"action" validate:"required,oneof=create read update delete"`
	} `json:"grants" validate:"required,dive"`
}

// GET /api/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles)
}

// GET /api/roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	role, err := h.roles.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, role)
}

// POST /api/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req createRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	role, err := h.roles.Create(c.Request.Context(), services.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Actor:       middleware.Email(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, role)
}

// PUT /api/roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	role, err := h.roles.Update(c.Request.Context(), id, services.UpdateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		Actor:       middleware.Email(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, role)
}

// DELETE /api/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.roles.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GET /api/roles/:id/grants
func (h *RoleHandler) ListGrants(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sheet, err := h.grants.ListForRole(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sheet)
}

// POST /api/roles/:id/grants
func (h *RoleHandler) SetGrant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req grantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Active == nil {
		response.Error(c, apperrors.NewBadRequest("active is required"))
		return
	}

	ref := services.GrantRef{Resource: req.Resource, Action: models.Action(req.Action)}
	if err := h.grants.SetGrant(c.Request.Context(), id, ref, *req.Active, middleware.Email(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// PUT /api/roles/:id/grants
func (h *RoleHandler) ReplaceGrants(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req replaceGrantsRequest
	if !bindAndValidate(c, &req) {
		return
	}

	refs := make([]services.GrantRef, 0, len(req.Grants))
	for _, g := range req.Grants {
		refs = append(refs, services.GrantRef{Resource: g.Resource, Action: models.Action(g.Action)})
	}

	if err := h.grants.ReplaceGrants(c.Request.Context(), id, refs, middleware.Email(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}
