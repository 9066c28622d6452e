package models

// Action is the closed set of verbs a permission can authorize. Extending it
// is a schema change, not runtime data.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AllActions returns the full action catalog in provisioning order.
func AllActions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// Valid reports whether the action belongs to the closed enumeration.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Permission is the atomic capability unit: one (data object, action) pair.
// The catalog holds at most one row per pair and is populated for every
// known resource at provisioning time.
type Permission struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	DataObjectID uint        `gorm:"not null;uniqueIndex:idx_permissions_object_action" json:"data_object_id"`
	Action       Action      `gorm:"type:varchar(16);not null;uniqueIndex:idx_permissions_object_action" json:"action"`
	DataObject   *DataObject `gorm:"foreignKey:DataObjectID" json:"data_object,omitempty"`
}
