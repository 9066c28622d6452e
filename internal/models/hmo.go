package models

import "time"

// HMO is a health maintenance organization the clinics bill against.
type HMO struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ShortName        string `gorm:"not null;index" json:"short_name"`
	LongName         string `gorm:"not null" json:"long_name"`
	Address          string `json:"address"`
	TaxAccountNumber string `json:"tax_account_number"`
	ContactNos       string `json:"contact_nos"`
	Active           bool   `gorm:"not null;default:true" json:"active"`

	LastModifiedBy string    `gorm:"not null;default:system" json:"last_modified_by"`
	LastModifiedOn time.Time `gorm:"autoUpdateTime" json:"last_modified_on"`
}

// TableName keeps the table aligned with the data object catalog entry.
func (HMO) TableName() string { return "hmos" }
