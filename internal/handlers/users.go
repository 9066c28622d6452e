package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// UserHandler exposes account management endpoints.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RoleID   uint   `json:"role_id" validate:"required"`
	Active   *bool  `json:"active"`
}

type updateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=128"`
	Email  *string `json:"email" validate:"omitempty,email"`
	RoleID *uint   `json:"role_id"`
	Active *bool   `json:"active"`
}

type setPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "page_size", 20)

	users, total, err := h.service.List(c.Request.Context(), services.ListUsersOptions{
		Page:     page,
		PageSize: perPage,
		Filters: services.UserFilters{
			Active: parseBoolQuery(c, "active"),
			RoleID: uint(parseIntQuery(c, "role_id", 0)),
			Query:  c.Query("q"),
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, response.NewMeta(page, perPage, total))
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.service.Create(c.Request.Context(), services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
		Active:   req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, services.UpdateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		RoleID: req.RoleID,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// PUT /api/users/:id/password
func (h *UserHandler) SetPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req setPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), id, req.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
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
