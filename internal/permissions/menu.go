package permissions

import (
	"context"
	"fmt"

	"github.com/dnc-ph/clinic-backend/internal/models"
)

// MenuState marks a menu entry in the activation map. The value is a
// constant marker rather than a boolean: absent resources are simply not in
// the map.
type MenuState string

// MenuEnabled is the only state an entry can carry.
const MenuEnabled MenuState = "enabled"

// MenuActivationMap is the set of resource names a role may read, keyed by
// data object name. It is computed fresh at every login and handed to the
// client for UI gating only.
type MenuActivationMap map[string]MenuState

// BuildMenuActivationMap collects the distinct data object names for which
// the role holds an active read grant.
func (a *Authorizer) BuildMenuActivationMap(ctx context.Context, roleID uint) (MenuActivationMap, error) {
	var names []string
	err := a.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Joins("JOIN data_objects ON data_objects.id = permissions.data_object_id").
		Where("role_permissions.role_id = ?", roleID).
		Where("role_permissions.active = ?", true).
		Where("permissions.action = ?", models.ActionRead).
		Distinct().
		Pluck("data_objects.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("authorizer: query readable objects: %w", err)
	}

	menu := make(MenuActivationMap, len(names))
	for _, name := range names {
		menu[name] = MenuEnabled
	}
	return menu, nil
}
