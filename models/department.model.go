package models

import "gorm.io/gorm"

// Department groups users for reporting and mandatory-training targeting.
type Department struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	HeadID      *uint  `json:"head_id"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
