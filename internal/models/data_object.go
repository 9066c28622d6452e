package models

// DataObject names a protected resource kind ("user", "dental_clinic", ...).
// The name is the stable external key used by every permission check; the
// numeric id is never referenced outside the database.
type DataObject struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
