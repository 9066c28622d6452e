package permissions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
)

// Authorizer answers whether a role holds a capability. It is the sole
// source of truth for enforcement: the menu activation map handed to clients
// at login is a UI hint and confers no authority.
type Authorizer struct {
	db *gorm.DB
}

// NewAuthorizer constructs an authorizer backed by the provided database.
func NewAuthorizer(db *gorm.DB) (*Authorizer, error) {
	if db == nil {
		return nil, errors.New("authorizer: db is required")
	}
	return &Authorizer{db: db}, nil
}

// RoleHasPermission reports whether an active grant links the role to the
// (resource, action) capability. One existence query per call; no caching,
// so revocations take effect on the very next request. A storage error is
// returned as an error, never folded into the boolean: callers treat it as
// fail-closed and reject the request as an internal fault.
func (a *Authorizer) RoleHasPermission(ctx context.Context, roleID uint, resource string, action models.Action) (bool, error) {
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return false, errors.New("authorizer: resource name is required")
	}
	if !action.Valid() {
		return false, fmt.Errorf("authorizer: unknown action %q", action)
	}

	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Joins("JOIN data_objects ON data_objects.id = permissions.data_object_id").
		Where("role_permissions.role_id = ?", roleID).
		Where("role_permissions.active = ?", true).
		Where("permissions.action = ?", action).
		Where("data_objects.name = ?", resource).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("authorizer: query grant: %w", err)
	}

	return count > 0, nil
}
