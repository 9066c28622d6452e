package models

import "time"

// DentalService is a billable service offered by accredited clinics.
type DentalService struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Description string `json:"description"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	LastModifiedBy string    `gorm:"not null;default:system" json:"last_modified_by"`
	LastModifiedOn time.Time `gorm:"autoUpdateTime" json:"last_modified_on"`
}
