package models

import "time"

// DentalClinic is an accredited clinic location.
type DentalClinic struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null;index" json:"name"`
	OwnerName      string `json:"owner_name"`
	Address        string `json:"address"`
	ZipCode        string `json:"zip_code"`
	Schedule       string `json:"schedule"`
	ContactNumbers string `json:"contact_numbers"`
	Email          string `json:"email"`
	Remarks        string `json:"remarks"`
	Active         bool   `gorm:"not null;default:true" json:"active"`

	LastModifiedBy string    `gorm:"not null;default:system" json:"last_modified_by"`
	LastModifiedOn time.Time `gorm:"autoUpdateTime" json:"last_modified_on"`
}
