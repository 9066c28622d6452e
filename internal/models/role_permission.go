package models

import "time"

// RolePermission is the grant edge: a role holds a capability iff an active
// row links it to the permission. Grants are revoked by clearing Active,
// never by deleting the row.
type RolePermission struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RoleID       uint `gorm:"not null;uniqueIndex:idx_role_permissions_edge" json:"role_id"`
	PermissionID uint `gorm:"not null;uniqueIndex:idx_role_permissions_edge" json:"permission_id"`
	Active       bool `gorm:"not null;default:true" json:"active"`

	LastModifiedBy string    `gorm:"not null;default:system" json:"last_modified_by"`
	LastModifiedOn time.Time `gorm:"autoUpdateTime" json:"last_modified_on"`

	Role       *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Permission *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}
