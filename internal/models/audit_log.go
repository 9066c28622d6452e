package models

import "time"

// AuditLog records authentication attempts and authorization denials.
// Entries are pruned by the maintenance cleaner after the retention window.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Email     string    `gorm:"index" json:"email"`
	Action    string    `gorm:"not null;index" json:"action"`
	Resource  string    `gorm:"index" json:"resource"`
	Result    string    `gorm:"not null" json:"result"`
	IPAddress string    `json:"ip_address"`
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
