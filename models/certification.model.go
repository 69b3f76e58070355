package models

import (
	"time"

	"gorm.io/gorm"
)

// Certification records an externally issued certificate a user holds.
type Certification struct {
	gorm.Model
	UserID              uint       `json:"user_id" gorm:"index;not null"`
	Name                string     `json:"name" gorm:"not null"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           time.Time  `json:"issue_date"`
	ExpiryDate          *time.Time `json:"expiry_date"`
	CredentialID        string     `json:"credential_id"`
	CredentialURL       string     `json:"credential_url"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
