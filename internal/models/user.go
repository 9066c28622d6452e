package models

import "time"

// User is an operator account. Password holds a PHC-encoded Argon2id hash
// and is never serialised.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	RoleID   uint   `gorm:"not null;index" json:"role_id"`
	Active   bool   `gorm:"not null;default:true" json:"active"`

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
