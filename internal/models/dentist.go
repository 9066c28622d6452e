package models

import "time"

// Dentist is an accredited practitioner.
type Dentist struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	LastName      string `gorm:"not null;index" json:"last_name"`
	GivenName     string `gorm:"not null" json:"given_name"`
	MiddleInitial string `json:"middle_initial"`
	Email         string `gorm:"index" json:"email"`
	RetainerFee   string `json:"retainer_fee"`
	Active        bool   `gorm:"not null;default:true" json:"active"`

	LastModifiedBy string    `gorm:"not null;default:system" json:"last_modified_by"`
	LastModifiedOn time.Time `gorm:"autoUpdateTime" json:"last_modified_on"`
}
