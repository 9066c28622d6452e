package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	apperrors "github.com/dnc-ph/clinic-backend/pkg/errors"
)

// ErrRoleInUse blocks deletion of a role that still has users assigned.
var ErrRoleInUse = apperrors.New("ROLE_IN_USE", "Role still has users assigned", http.StatusConflict)

// CreateRoleInput describes the payload accepted by Create.
type CreateRoleInput struct {
	Name        string
	Description string
	Actor       string
}

// UpdateRoleInput describes mutable fields on a role.
type UpdateRoleInput struct {
	Name        *string
	Description *string
	Active      *bool
	Actor       string
}

// RoleService manages the role catalog. Grant assignment lives in
// GrantService; this service only handles role metadata.
type RoleService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewRoleService constructs a RoleService.
func NewRoleService(db *gorm.DB, audit *AuditService) (*RoleService, error) {
	if db == nil {
		return nil, errors.New("role service: db is required")
	}
	return &RoleService{db: db, audit: audit}, nil
}

// Create registers a new role. New roles start with no grants: a role only
// gains capabilities through explicit grant activation.
func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*models.Role, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("role name is required")
	}

	role := &models.Role{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Active:      true,
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		role.LastModifiedBy = actor
	}

	if err := s.db.WithContext(ctx).Create(role).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewBadRequest("role name already exists")
		}
		return nil, fmt.Errorf("role service: create role: %w", err)
	}

	recordAudit(s.audit, ctx, AuditEntry{
		Email:    input.Actor,
		Action:   "role.create",
		Resource: "role",
		Result:   AuditResultSuccess,
	})

	return role, nil
}

// GetByID loads a role.
func (s *RoleService) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	ctx = ensureContext(ctx)

	var role models.Role
	err := s.db.WithContext(ctx).Take(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("role service: get role: %w", err)
	}
	return &role, nil
}

// List returns all roles ordered by name.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	ctx = ensureContext(ctx)

	var roles []models.Role
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("role service: list roles: %w", err)
	}
	return roles, nil
}

// Update modifies role metadata.
func (s *RoleService) Update(ctx context.Context, id uint, input UpdateRoleInput) (*models.Role, error) {
	ctx = ensureContext(ctx)

	var role models.Role
	err := s.db.WithContext(ctx).Take(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("role service: load role: %w", err)
	}

	updates := map[string]any{}
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" && name != role.Name {
			updates["name"] = name
		}
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) == 0 {
		return &role, nil
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		updates["last_modified_by"] = actor
	}

	if err := s.db.WithContext(ctx).Model(&role).Updates(updates).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewBadRequest("role name already exists")
		}
		return nil, fmt.Errorf("role service: update role: %w", err)
	}

	if err := s.db.WithContext(ctx).Take(&role, id).Error; err != nil {
		return nil, fmt.Errorf("role service: reload role: %w", err)
	}

	recordAudit(s.audit, ctx, AuditEntry{
		Email:    input.Actor,
		Action:   "role.update",
		Resource: "role",
		Result:   AuditResultSuccess,
	})

	return &role, nil
}

// Delete removes a role and its grant edges. Roles with users assigned
// cannot be deleted; reassign the users first.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	var assigned int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role_id = ?", id).Count(&assigned).Error; err != nil {
		return fmt.Errorf("role service: count assignments: %w", err)
	}
	if assigned > 0 {
		return ErrRoleInUse
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("role service: delete grants: %w", err)
		}
		res := tx.Delete(&models.Role{}, id)
		if res.Error != nil {
			return fmt.Errorf("role service: delete role: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRoleNotFound
		}
		return nil
	})
}
